package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/rocketcart/internal/db"
	"github.com/nikolayk812/rocketcart/internal/port"
)

type postgresStorage struct {
	q *db.Queries
}

func NewPostgres(pool *pgxpool.Pool) port.CartStorage {
	return &postgresStorage{
		q: db.New(pool),
	}
}

// NewPostgresWithTx binds the storage to a caller-owned transaction.
func NewPostgresWithTx(tx pgx.Tx) port.CartStorage {
	return &postgresStorage{
		q: db.New(tx),
	}
}

// OpenPostgres creates a pool and waits until the database answers a ping.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

func (r *postgresStorage) Read(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	row, err := r.q.GetValue(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetValue: %w", err)
	}

	return row.Value, true, nil
}

func (r *postgresStorage) Write(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	err := r.q.PutValue(ctx, db.PutValueParams{
		StorageKey: key,
		Value:      value,
	})
	if err != nil {
		return fmt.Errorf("q.PutValue: %w", err)
	}

	return nil
}
