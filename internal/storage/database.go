package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"threadgems/internal/config"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqliteMigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type DatabaseProvider struct {
	db    *sql.DB
	clock func() time.Time
}

func NewDatabaseProvider(ctx context.Context, cfg *config.Config) (*DatabaseProvider, error) {
	if cfg.Storage == nil || cfg.Storage.Path == "" {
		return nil, fmt.Errorf("storage path is not configured")
	}

	db, err := sql.Open("sqlite", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseProvider{db: db, clock: time.Now}, nil
}

func (p *DatabaseProvider) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *DatabaseProvider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// RunMigrations applies every embedded migration that has not run yet.
func (p *DatabaseProvider) RunMigrations(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	target, err := sqliteMigrate.WithInstance(p.db, &sqliteMigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}
