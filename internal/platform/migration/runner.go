// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the account and snippet schema with golang-migrate
// before the server accepts traffic.
//
// It only runs when STORAGE_DRIVER=postgres; the memory driver has no schema.
// The SQL is read from MIGRATION_PATH when set, and from the copy embedded in
// the binary otherwise.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/snipbin/data/migrations"
)

/*
RunUp applies all pending UP migrations.

Description: A database left dirty by an interrupted migration is refused;
it needs a manual `migrate force` before the server can start.

Parameters:
  - dsn: A postgres:// URL
  - migrationsPath: Directory of *.sql files, or "" for the embedded schema
  - logger: *slog.Logger

Returns:
  - error: Initialization, dirty-state, or apply failures
*/
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := newMigrator(convertToPgx5DSN(dsn), migrationsPath)
	if err != nil {
		return fmt.Errorf("migration_init_failed: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if err := errors.Join(sourceError, dbError); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger, verbose: logger.Enabled(context.Background(), slog.LevelDebug)}

	fromVersion, isDirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fromVersion = 0
	case err != nil:
		return fmt.Errorf("migration_version_failed: %w", err)
	case isDirty:
		return fmt.Errorf("migration_dirty: version %d needs manual intervention", fromVersion)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", slog.Uint64("version", uint64(fromVersion)))
			return nil
		}
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(fromVersion)),
		slog.Uint64("to_version", uint64(toVersion)),
	)

	return nil
}

// newMigrator opens the schema source and the target database.
func newMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, error) {
	if migrationsPath != "" {
		return migrate.New("file://"+migrationsPath, databaseURL)
	}

	embedded, err := embeddedSource()
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", embedded, databaseURL)
}

// embeddedSource serves the SQL files compiled into the binary.
func embeddedSource() (source.Driver, error) {
	return iofs.New(migrations.FS, ".")
}

// convertToPgx5DSN rewrites a postgres:// or postgresql:// URL to the pgx5://
// scheme the golang-migrate pgx/v5 driver registers.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger routes golang-migrate's output to slog at debug level.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
