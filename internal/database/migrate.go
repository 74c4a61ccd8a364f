package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// migrate driver
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// NewMigrate builds a migrate instance for the configured database.
// dir is the migrations root holding sqlite/ and postgres/ subdirectories.
func NewMigrate(db *sqlx.DB, cfg config.DBConfig, dir string) (*migrate.Migrate, error) {
	dir = strings.TrimRight(dir, "/")

	if cfg.IsMemory() {
		// Shared-cache memory databases are only reachable through the open handle
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("could not create sqlite driver: %w", err)
		}
		m, err := migrate.NewWithDatabaseInstance("file://"+dir+"/sqlite", "sqlite3", driver)
		if err != nil {
			return nil, fmt.Errorf("could not create migrate instance: %w", err)
		}
		return m, nil
	}

	m, err := migrate.New("file://"+dir+"/postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending up migrations
func Migrate(db *sqlx.DB, cfg config.DBConfig, dir string) error {
	m, err := NewMigrate(db, cfg, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
