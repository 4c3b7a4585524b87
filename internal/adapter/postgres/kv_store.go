package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVStore implements port.KVStore on the kv_store table. It works on a
// database/sql handle so it can run on a pgx pool through pgx/v5/stdlib.
type KVStore struct {
	db *sql.DB
}

// NewKVStore returns a new store instance.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value, updated_at = now()`, key, value)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}
