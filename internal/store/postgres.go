package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a shared Postgres database, for
// deployments where several echo-cache instances serve the same map.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			client_id TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create cache table: %w", err)
	}
	return nil
}

// LoadAll implements Store.
func (s *PostgresStore) LoadAll(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx, "SELECT key, data FROM cache")
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		out[key] = json.RawMessage(data)
	}
	return out, rows.Err()
}

// UpsertAll implements Store. All entries commit together or not at all.
func (s *PostgresStore) UpsertAll(ctx context.Context, patch map[string]json.RawMessage, clientID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var client *string
	if clientID != "" {
		client = &clientID
	}
	for key, data := range patch {
		_, err := tx.Exec(ctx, `
			INSERT INTO cache (key, data, client_id, updated_at) VALUES ($1, $2, $3, now())
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, client_id = EXCLUDED.client_id, updated_at = now()
		`, key, []byte(data), client)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", key, err)
		}
	}
	return tx.Commit(ctx)
}

// PurgeExpired implements Store.
func (s *PostgresStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM cache
		WHERE (data->>'expires_at') ~ '^[0-9]+$'
		  AND (data->>'expires_at')::BIGINT BETWEEN 1 AND $1
	`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
