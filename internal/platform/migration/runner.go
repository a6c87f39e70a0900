// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

/*
Package migration applies the SQL files under data/migrations at startup.

It wraps golang-migrate: main.go calls [RunUp] after the database pool comes
up and before the server accepts traffic, so the catalog and users schemas
are guaranteed current whenever a request can reach a handler. A dirty
migration state aborts startup instead of limping on against a half-applied
schema.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme for on-disk .sql files.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

/*
RunUp applies every pending up migration.

Description: Builds a migrator over the file source and the pgx5 database
driver, refuses to proceed from a dirty state, and treats "no change" as
success. Progress is reported through the supplied structured logger.

Parameters:
  - dsn: postgres:// or postgresql:// connection string (rewritten to pgx5://)
  - migrationsPath: Directory holding the numbered .sql migration files
  - logger: *slog.Logger

Returns:
  - error: Initialization, dirty-state, or migration execution failures
*/
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {

	migrator, err := migrate.New("file://"+migrationsPath, pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if sourceErr != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
		}
		if databaseErr != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", databaseErr))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d, manual intervention required", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	appliedVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(appliedVersion)),
	)

	return nil
}

// pgx5DSN rewrites a postgres:// or postgresql:// DSN to the pgx5:// scheme
// golang-migrate's pgx/v5 driver registers under. Any other scheme passes
// through untouched.
func pgx5DSN(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + rest
	}
	return dsn
}

// migrateLogger bridges golang-migrate's logger interface onto slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (bridge *migrateLogger) Printf(format string, args ...any) {
	bridge.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (bridge *migrateLogger) Verbose() bool {
	return bridge.verbose
}
