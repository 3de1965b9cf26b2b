package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool settings sized for a single interactive client.
const (
	maxConns        = 4
	minConns        = 0
	maxConnLifetime = 60 * time.Minute
	maxConnIdleTime = 10 * time.Minute
	connectTimeout  = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

// NewPool creates and validates a PostgreSQL connection pool for the review store.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("reviews: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("reviews: failed to create pool: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reviews: ping failed: %w", err)
	}

	logger.Info("review store connected", "max_conns", poolConfig.MaxConns)
	return pool, nil
}
