package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DB wraps the Postgres connection pool used by the repositories.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to Postgres and verifies the connection.
func NewDB(ctx context.Context, dsn string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connection pool initialized",
		zap.Int32("total_conns", pool.Stat().TotalConns()),
		zap.Int32("idle_conns", pool.Stat().IdleConns()),
	)
	return &DB{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pool.
func (db *DB) Pool() *pgxpool.Pool { return db.pool }

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}
