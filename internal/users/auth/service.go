// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
Package auth implements identity and access management for the back office.

It covers credential verification, RSA-signed JWT access tokens, and Redis
backed refresh token rotation. There is no public registration: accounts are
provisioned by an administrator and carry one of the back-office roles.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/constants"
	"github.com/soultanzania/safari-api/internal/platform/sec"
	"github.com/soultanzania/safari-api/internal/platform/validate"
	"github.com/soultanzania/safari-api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements back-office authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenStore     RefreshTokenStore
	tokenProvider  TokenProvider
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenStore RefreshTokenStore, tokenProvider TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenStore:     tokenStore,
		tokenProvider:  tokenProvider,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}

// Session represents a successfully established back-office session.
type Session struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

/*
Login validates credentials and issues a token pair.

Description: Looks up the account by email or username, verifies the
password with a constant-time bcrypt comparison, and records the refresh
token hash in the token store. Lookup and password failures share one
generic message to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Flexible login: email first, then username. Emails are stored
	// lowercased, so the lookup folds case the same way.
	login := strings.TrimSpace(input.Login)
	user, err := service.userRepository.FindByEmail(context, strings.ToLower(login))
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, login)
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueSession(context, user)
}

/*
Refresh implements refresh token rotation.

Description: Resolves the presented token, revokes it so it can never be
replayed, and issues a fresh pair for the same account.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New session credentials
  - error: Unauthorized if the token is unknown, expired, or already rotated
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {

	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.tokenStore.Get(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: the presented token dies with this exchange
	if err := service.tokenStore.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth: failed to rotate refresh token: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or deactivated")
	}

	return service.issueSession(context, user)
}

/*
Logout revokes the presented refresh token.

Description: Idempotent; logging out with an already-dead token succeeds.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.tokenStore.Delete(context, sec.HashToken(refreshToken))
}

/*
Me returns the account behind an authenticated request.

Parameters:
  - context: context.Context
  - userID: string (From verified claims)

Returns:
  - *User: The account entity
  - error: NotFound if the account vanished since the token was issued
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Account Provisioning

// CreateAccountInput holds the data to provision a back-office account.
type CreateAccountInput struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     sec.UserRole `json:"role"`
}

/*
CreateAccount provisions a new back-office account.

Description: Admin-only. Validates the identity block, hashes the
password, and defaults the role to viewer when none is given.

Parameters:
  - context: context.Context
  - input: CreateAccountInput

Returns:
  - *User: The created account
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) CreateAccount(context context.Context, input CreateAccountInput) (*User, error) {

	validator := &validate.Validator{}
	validator.Required("username", input.Username).MaxLen("username", input.Username, 50)
	validator.Required("email", input.Email).Email("email", input.Email)
	validator.Required("password", input.Password).MinLen("password", input.Password, 10)
	if input.Role != "" {
		validator.OneOf("role", string(input.Role),
			string(sec.RoleAdmin), string(sec.RoleEditor), string(sec.RoleViewer))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = sec.RoleViewer
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	// Time-sortable ID to keep the primary key index append-only
	user := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

/*
ChangePassword rotates an account's own password.

Description: Verifies the current password before accepting the new one.
Live refresh tokens are NOT revoked here; access tokens are short-lived
and the admin can deactivate the account for a hard cut.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized, validation, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	validator := &validate.Validator{}
	validator.Required("new_password", newPassword).MinLen("new_password", newPassword, 10)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth: failed to hash password: %w", err)
	}

	return service.userRepository.UpdatePassword(context, userID, passwordHash)
}

// # Internal Helpers

// issueSession mints an access/refresh token pair for a verified account.
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to generate access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	if err := service.tokenStore.Set(context, sec.HashToken(refreshToken), user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth: failed to persist refresh token: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
