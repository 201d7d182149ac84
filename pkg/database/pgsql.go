package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConnectTimeout = 5 * time.Second

// PoolOption tunes the pgxpool configuration parsed from the database URL.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps the pool size. Zero leaves the pgxpool default in place.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// WithConnectTimeout overrides the per-connection dial timeout.
func WithConnectTimeout(d time.Duration) PoolOption {
	return func(c *pgxpool.Config) {
		c.ConnConfig.ConnectTimeout = d
	}
}

// NewPgxPool opens a PostgreSQL pool. With ping set, one connection is established
// before returning so a bad URL fails at startup rather than on the first request.
func NewPgxPool(ctx context.Context, databaseURL string, ping bool, opts ...PoolOption) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	config.ConnConfig.ConnectTimeout = defaultConnectTimeout
	for _, opt := range opts {
		opt(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.InfoContext(ctx, "Connected to PostgreSQL",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
		slog.Bool("pinged", ping))
	return pool, nil
}

// ClosePgxPool closes the pool; a nil pool is ignored.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	pool.Close()
	slog.Info("PostgreSQL connection pool closed")
}
