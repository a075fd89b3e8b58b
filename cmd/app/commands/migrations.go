package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/custody/internal/database"
)

// migrationsPath maps a database driver to its migrations directory.
func migrationsPath(driver string) string {
	if driver == database.DriverMySQL {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// RunMigrations applies all pending migrations for the configured driver. Returns nil
// when there is nothing to apply. MySQL connection strings need multiStatements=true
// because the custody_events trigger migration holds several statements.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations",
		slog.String("driver", driver),
	)

	m, err := migrate.New(migrationsPath(driver), connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
