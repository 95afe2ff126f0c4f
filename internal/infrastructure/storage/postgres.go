package storage

import (
	"context"
	"errors"
	"fmt"

	"shade-storefront/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS local_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	getItemSQL    = `SELECT value FROM local_storage WHERE key = $1`
	setItemSQL    = `INSERT INTO local_storage (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	removeItemSQL = `DELETE FROM local_storage WHERE key = $1`
)

// querier is the subset of *pgxpool.Pool used here.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage keeps snapshots in a single key/value table.
type PostgresStorage struct {
	db querier
}

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

func NewPostgresStorage(db querier) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create local_storage table: %w", err)
	}
	return nil
}

func (p *PostgresStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(ctx, getItemSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

func (p *PostgresStorage) SetItem(ctx context.Context, key, value string) error {
	if _, err := p.db.Exec(ctx, setItemSQL, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStorage) RemoveItem(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, removeItemSQL, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
