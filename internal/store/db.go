package store

import (
	"context"
	"fmt"

	"github.com/autodiag/autodiag/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect builds the pgx pool for cfg. Connections are established lazily,
// so a database that is down at boot is not an error here; callers that
// need liveness do a bounded Ping and degrade on failure.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return pool, nil
}
