package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a Store in a PostgreSQL table shared by several hosts.
type Postgres struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("cache: postgres: dsn is required")
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: postgres: connect: %w", err)
	}

	p := &Postgres{
		pool:    pool,
		timeout: timeout,
	}

	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	const sql = `CREATE TABLE IF NOT EXISTS basen_cache (
		key BYTEA PRIMARY KEY,
		value BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(queryCtx, sql); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cache: postgres: create table: %w", err)
	}

	return p, nil
}

func (p *Postgres) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var value []byte
	err := p.pool.QueryRow(queryCtx, "SELECT value FROM basen_cache WHERE key = $1", key[:]).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: postgres: get %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Put(ctx context.Context, key Key, value []byte) error {
	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	const sql = `INSERT INTO basen_cache (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.pool.Exec(queryCtx, sql, key[:], value); err != nil {
		return fmt.Errorf("cache: postgres: put %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
