package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poloedu/polobill/internal/config"
	ierr "github.com/poloedu/polobill/internal/errors"
)

// NewPool creates a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg *config.Configuration) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid postgres configuration").
			Mark(ierr.ErrDatabase)
	}

	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create postgres connection pool").
			Mark(ierr.ErrDatabase)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	return pool, nil
}
