// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soultanzania/safari-api/internal/platform/middleware"
	requestutil "github.com/soultanzania/safari-api/internal/platform/request"
	"github.com/soultanzania/safari-api/internal/platform/respond"
	"github.com/soultanzania/safari-api/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for back-office authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Session Lifecycle (Public)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// ## Authenticated Self-Service
	router.Get("/me", handler.me)
	router.Post("/password", handler.changePassword)

	// ## Account Provisioning (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/accounts", handler.createAccount)
	})

	return router
}

// # Session Endpoints

/*
POST /api/v1/auth/login.

Request (Body):
  - login: string (Username or email)
  - password: string

Response:
  - 200: Session: Access and refresh token pair
  - 401: Unauthorized: Unknown identity or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// refreshRequest carries the long-lived token for rotation or revocation.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

/*
POST /api/v1/auth/refresh.

Description: Rotates the refresh token: the presented token is revoked and
a new pair is issued.

Request (Body):
  - refresh_token: string

Response:
  - 200: Session: Fresh token pair
  - 401: Unauthorized: Token unknown, expired, or already rotated
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var payload refreshRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Refresh(request.Context(), payload.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
POST /api/v1/auth/logout.

Description: Revokes the presented refresh token. Idempotent.

Request (Body):
  - refresh_token: string

Response:
  - 204: Revoked (or was already dead)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var payload refreshRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), payload.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Endpoints

/*
GET /api/v1/auth/me.

Response:
  - 200: User: The authenticated account
  - 401: Unauthorized: No valid access token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// changePasswordRequest carries a password rotation for the caller's account.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
POST /api/v1/auth/password.

Request (Body):
  - current_password: string
  - new_password: string (Min 10 characters)

Response:
  - 204: Password rotated
  - 401: Unauthorized: Not authenticated or wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), claims.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Provisioning Endpoints

/*
POST /api/v1/auth/accounts.

Description: Provisions a new back-office account. Admin only.

Request (Body): CreateAccountInput JSON.

Response:
  - 201: User: The created account
  - 400: ValidationError: Weak password or malformed identity
  - 409: Conflict: Username or email already taken
*/
func (handler *Handler) createAccount(writer http.ResponseWriter, request *http.Request) {
	var input CreateAccountInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateAccount(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}
