// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/database/schema"
	"github.com/soultanzania/safari-api/internal/platform/dberr"
)

// # PostgreSQL User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres implementation for account identity.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// findBy runs the shared single-account lookup with one predicate column.
func (repository *PostgresUserRepository) findBy(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.Role, schema.UsersAccount.IsActive,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table, column, schema.UsersAccount.IsActive,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres: failed to find account: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves an active account by primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

/*
FindByEmail retrieves an active account by email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email)
}

/*
FindByUsername retrieves an active account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Username, username)
}

/*
Create persists a new account.

Description: Unique indexes on username and email reject duplicates;
violations surface as a conflict.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict on duplicate identity, or storage failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.Role, schema.UsersAccount.IsActive,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create account")
	}
	return nil
}

/*
UpdatePassword replaces the stored password hash for an account.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - passwordHash: string (bcrypt digest)

Returns:
  - error: apperr.NotFound if the account is missing, or storage failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.UsersAccount.Table,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt, schema.UsersAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres: failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}
