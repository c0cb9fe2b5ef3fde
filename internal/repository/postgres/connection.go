package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulthapa9024/basic-app/database"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

const (
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = 30 * time.Second
)

var errNoPool = errors.New("connection pool is nil")

// Querier is the subset of pgxpool.Pool used by repositories.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier      = (*Connection)(nil)
	_ model.Pinger = (*Connection)(nil)
)

// Connection is a migrated PostgreSQL connection pool shared by the user store.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection applies pending migrations and opens a pool for dsn.
// The database must answer a ping before the pool is returned.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	conf.MaxConnIdleTime = maxConnIdleTime
	conf.HealthCheckPeriod = healthCheckPeriod

	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

// Close releases every pooled connection.
func (c *Connection) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// Ping reports whether the database answers.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return errNoPool
	}
	return c.Pool.Ping(ctx)
}
