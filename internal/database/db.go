package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/config"
)

const (
	// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure
	uniqueViolation = "23505"

	defaultConnectTimeout = 5 * time.Second
)

// DB is the shared Postgres pool behind every repository
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// New opens the pool and pings it within cfg.ConnectTimeout
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	pool, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.MaxLifetime)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s: %w", cfg.Name, cfg.Host, err)
	}

	db := &DB{
		DB:  pool,
		log: log.With().Str("component", "database").Logger(),
	}
	db.log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connection established")

	return db, nil
}

// RunMigrations applies every pending migration under migrationsPath
func (db *DB) RunMigrations(migrationsPath string) error {
	return db.migrate(migrationsPath, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back the most recent migration
func (db *DB) MigrateDown(migrationsPath string) error {
	return db.migrate(migrationsPath, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

func (db *DB) migrate(migrationsPath, direction string, step func(*migrate.Migrate) error) error {
	log := db.log.With().Str("path", migrationsPath).Str("direction", direction).Logger()
	log.Info().Msg("Running database migrations")

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations completed")
	return nil
}

// HealthCheck pings the pool
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
