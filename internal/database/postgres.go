package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tempestas-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open creates a PostgreSQL connection pool and verifies it with a bounded
// retry: up to 5 ping attempts with capped exponential backoff. Only the
// initial connectivity check is retried here; per-statement retry for
// transient faults lives in the repository layer.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 30 * time.Second

	ping := func() error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("Database ping failed, retrying", zap.Error(err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(backoff.WithMaxRetries(policy, 4), ctx)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the pool; safe on nil.
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
