// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/sec"
	"github.com/soultanzania/safari-api/internal/users/auth"
)

// # In-Memory Doubles

type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok || !user.IsActive {
		return nil, apperr.NotFound("Account")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return f.FindByID(ctx, user.ID)
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return f.FindByID(ctx, user.ID)
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Account already exists")
		}
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeTokenStore struct {
	tokens map[string]string // tokenHash -> userID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (f *fakeTokenStore) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, tokenHash string) (string, error) {
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return "", apperr.Unauthorized("Refresh token is invalid or expired")
	}
	return userID, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

// fakeTokenProvider stamps tokens deterministically instead of signing JWTs.
type fakeTokenProvider struct {
	issued int
}

func (f *fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	f.issued++
	return fmt.Sprintf("access:%s:%s:%s:%d", userID, username, role, f.issued), nil
}

// newTestService wires a service with one provisioned admin account.
func newTestService(t *testing.T) (*auth.Service, *fakeTokenStore, *auth.User) {
	t.Helper()

	users := newFakeUserRepository()
	tokens := newFakeTokenStore()
	service := auth.NewService(users, tokens, &fakeTokenProvider{})

	admin, err := service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: "asha",
		Email:    "asha@soultanzania.com",
		Password: "correct-horse-battery",
		Role:     sec.RoleAdmin,
	})
	require.NoError(t, err)

	return service, tokens, admin
}

// # Login

/*
TestService_Login verifies both login identifiers and that lookup and
password failures are indistinguishable to the caller.
*/
func TestService_Login(t *testing.T) {
	service, _, admin := newTestService(t)

	// By email
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "asha@soultanzania.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, admin.ID, session.User.ID)
	assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))

	// By email, any capitalization: accounts store emails lowercased, so
	// the login lookup must fold case the same way.
	session, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "  Asha@SoulTanzania.COM ",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, session.User.ID)

	// By username
	session, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "asha",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, session.User.ID)

	// Wrong password and unknown account share the same generic message
	_, badPassword := service.Login(context.Background(), auth.LoginInput{
		Login:    "asha",
		Password: "wrong-password-here",
	})
	_, unknownUser := service.Login(context.Background(), auth.LoginInput{
		Login:    "nobody",
		Password: "correct-horse-battery",
	})
	require.Error(t, badPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, badPassword.Error(), unknownUser.Error())
	assert.Equal(t, "UNAUTHORIZED", apperr.As(badPassword).Code)
}

// # Refresh Rotation

/*
TestService_Refresh verifies single-use rotation: a refresh token is
consumed by the exchange and can never be replayed.
*/
func TestService_Refresh(t *testing.T) {
	service, _, admin := newTestService(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "asha",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	rotated, err := service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, rotated.User.ID)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.NotEqual(t, session.AccessToken, rotated.AccessToken)

	// Replaying the consumed token must fail
	_, err = service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token is still live
	_, err = service.Refresh(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

/*
TestService_Logout revokes the refresh token and stays idempotent.
*/
func TestService_Logout(t *testing.T) {
	service, tokens, _ := newTestService(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "asha",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.Len(t, tokens.tokens, 1)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, tokens.tokens)

	// Logging out again with a dead token is not an error
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
}

// # Account Provisioning

/*
TestService_CreateAccount covers normalization, the default role, and
duplicate identity rejection.
*/
func TestService_CreateAccount(t *testing.T) {
	service, _, _ := newTestService(t)

	user, err := service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: "  juma ",
		Email:    " Juma@SoulTanzania.COM ",
		Password: "longenoughpassword",
	})
	require.NoError(t, err)

	assert.Equal(t, "juma", user.Username)
	assert.Equal(t, "juma@soultanzania.com", user.Email)
	assert.Equal(t, sec.RoleViewer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "longenoughpassword", user.PasswordHash)

	// Duplicate username
	_, err = service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Username: "juma",
		Email:    "other@soultanzania.com",
		Password: "longenoughpassword",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_CreateAccount_Validation rejects incomplete or weak input.
*/
func TestService_CreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.CreateAccountInput
	}{
		{"missing_username", auth.CreateAccountInput{Email: "a@b.com", Password: "longenoughpassword"}},
		{"missing_email", auth.CreateAccountInput{Username: "juma", Password: "longenoughpassword"}},
		{"bad_email", auth.CreateAccountInput{Username: "juma", Email: "nope", Password: "longenoughpassword"}},
		{"short_password", auth.CreateAccountInput{Username: "juma", Email: "a@b.com", Password: "short"}},
		{"unknown_role", auth.CreateAccountInput{Username: "juma", Email: "a@b.com", Password: "longenoughpassword", Role: sec.UserRole("owner")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			_, err := service.CreateAccount(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

// # Password Rotation

/*
TestService_ChangePassword verifies the current password gate and that the
new credential takes effect immediately.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _, admin := newTestService(t)

	// Wrong current password
	err := service.ChangePassword(context.Background(), admin.ID, "not-the-password", "a-brand-new-secret")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Weak replacement
	err = service.ChangePassword(context.Background(), admin.ID, "correct-horse-battery", "short")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Successful rotation
	err = service.ChangePassword(context.Background(), admin.ID, "correct-horse-battery", "a-brand-new-secret")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Login: "asha", Password: "correct-horse-battery"})
	require.Error(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{Login: "asha", Password: "a-brand-new-secret"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, session.User.ID)
}
