// Package persistence opens the configured store and exposes it as repository ports.
package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/sqlite"
)

// Stores bundles every repository of one backend.
type Stores struct {
	Users       ports.UserRepository
	Projects    ports.ProjectRepository
	Individuals ports.IndividualRepository
	Links       ports.LinkRepository
	Contacts    ports.ContactRepository

	// Ping reports whether the backend is reachable.
	Ping  func(ctx context.Context) error
	Close func()
}

// Open connects to cfg.Driver and prepares the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.URL)
	case config.DriverSQLite:
		return openSQLite(cfg.URL, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, url string) (*Stores, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	queries := db.New(pool)
	return &Stores{
		Users:       postgres.NewUserRepository(queries, pool),
		Projects:    postgres.NewProjectRepository(queries, pool),
		Individuals: postgres.NewIndividualRepository(queries, pool),
		Links:       postgres.NewLinkRepository(queries, pool),
		Contacts:    postgres.NewContactRepository(queries),
		Ping:        pool.Ping,
		Close:       pool.Close,
	}, nil
}

func openSQLite(dsn string, log zerolog.Logger) (*Stores, error) {
	gdb, err := sqlite.Open(dsn, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:       sqlite.NewUserRepository(gdb),
		Projects:    sqlite.NewProjectRepository(gdb),
		Individuals: sqlite.NewIndividualRepository(gdb),
		Links:       sqlite.NewLinkRepository(gdb),
		Contacts:    sqlite.NewContactRepository(gdb),
		Ping:        sqlDB.PingContext,
		Close:       func() { _ = sqlDB.Close() },
	}, nil
}
