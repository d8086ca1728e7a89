package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists each collection as one jsonb row in the
// collections table. Save is a plain upsert: the later writer silently
// wins, matching the documented store contract.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx,
		"SELECT doc FROM collections WHERE key = $1", key,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return doc, nil
}

func (p *PostgresStore) Save(ctx context.Context, key string, doc []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO collections (key, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`, key, doc)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}
