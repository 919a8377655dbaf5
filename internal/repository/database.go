package repository

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // Registers the postgres:// migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

//go:embed migrations/control/*.sql
var controlMigrations embed.FS

//go:embed migrations/device/*.sql
var deviceMigrations embed.FS

// NewPostgresDB establishes a new connection to the PostgreSQL database.
func NewPostgresDB(dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Successfully connected to the database!")
	return db, nil
}

// MigrateControl applies the investigator and connection-detail migrations to the default schema.
func MigrateControl(databaseURL string, logger *zap.Logger) error {
	return applyMigrations(controlMigrations, "migrations/control", databaseURL, logger)
}

// MigrateDevice applies the device-data migrations to the given schema.
func MigrateDevice(databaseURL, schema string, logger *zap.Logger) error {
	dsn, err := WithSearchPath(databaseURL, schema)
	if err != nil {
		return err
	}
	return applyMigrations(deviceMigrations, "migrations/device", dsn, logger.With(zap.String("schema", schema)))
}

func applyMigrations(fsys fs.FS, dir, databaseURL string, logger *zap.Logger) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migration was run successfully", zap.String("source", dir))
	return nil
}

// WithSearchPath returns databaseURL with its search_path runtime parameter set to schema.
// databaseURL must be in URL form (postgres://...).
func WithSearchPath(databaseURL, schema string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid database url: unsupported scheme %q", u.Scheme)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
