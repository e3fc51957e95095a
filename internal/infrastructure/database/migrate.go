package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"musterbot/internal/infrastructure/database/migrations"
)

// RunMigrations applique les migrations embarquées du moteur désigné par
// databaseURL.
func RunMigrations(databaseURL string) error {
	backend, err := ParseBackend(databaseURL)
	if err != nil {
		return err
	}
	if backend == BackendSQLite {
		if err := ensureSQLiteDir(databaseURL); err != nil {
			return err
		}
	}

	src, err := iofs.New(migrations.FS, string(backend))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("✅ Migrations appliquées", "backend", backend, "version", version, "dirty", dirty)
	return nil
}
