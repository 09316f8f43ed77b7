// Package pg is the shared-remote persistence strategy: a durable
// Postgres table set plus a LISTEN/NOTIFY change feed, so mutations from
// any process reach every subscribed observer.
package pg

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/aviationlaunchpad/launchpad/internal/config"
	"github.com/aviationlaunchpad/launchpad/internal/logger"
	"github.com/aviationlaunchpad/launchpad/internal/storage/feed"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	db       *sql.DB
	hub      *feed.Hub
	listener *threadListener
}

func New(cfg config.Pg) (*Storage, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to postgres", "host", cfg.Host, "dbname", cfg.Dbname)

	if err := runMigrations(cfg.URL()); err != nil {
		db.Close()
		return nil, err
	}

	hub := feed.NewHub()
	listener, err := newThreadListener(cfg.URL(), hub)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db, hub: hub, listener: listener}, nil
}

func Connect(cfg config.Pg) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func runMigrations(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Storage) Cleanup() error {
	if s.listener != nil {
		s.listener.Close()
	}
	s.hub.Close()
	return s.db.Close()
}

// Ping reports readiness for health checks.
func (s *Storage) Ping() error {
	return s.db.Ping()
}
