// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth

import (
	"time"

	"github.com/soultanzania/safari-api/internal/platform/sec"
)

// # Identity Entity

// User is a back-office account. There is no public sign-up; accounts are
// provisioned by an administrator.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// PasswordHash is the bcrypt digest of the account password.
	// Never serialized to clients.
	PasswordHash string `json:"-"`

	Role     sec.UserRole `json:"role"`
	IsActive bool         `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Token Parameters

const (
	// RefreshTokenLength is the entropy, in bytes, of a refresh token.
	RefreshTokenLength = 32
)
