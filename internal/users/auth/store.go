// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for back-office accounts.
type UserRepository interface {

	/*
		FindByID returns the active account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated identity entity
		  - error: NotFound if missing or deactivated
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the active account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated identity entity
		  - error: NotFound if missing or deactivated
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the active account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated identity entity
		  - error: NotFound if missing or deactivated
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate email/username, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces the stored password hash for an account.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - passwordHash: string (bcrypt digest)

		Returns:
		  - error: Update failures
	*/
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// # Refresh Token Store

// RefreshTokenStore tracks live refresh tokens by hash with automatic expiry.
type RefreshTokenStore interface {

	/*
		Set records a refresh token hash for a user with a time-to-live.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 hex of the raw token)
		  - userID: string (Owner UUID)
		  - timeToLive: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, tokenHash, userID string, timeToLive time.Duration) error

	/*
		Get resolves a refresh token hash to its owner.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: Owner UUID
		  - error: Unauthorized if the token is unknown or expired
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete revokes a refresh token hash. Deleting an unknown hash is not
		an error.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, tokenHash string) error
}
