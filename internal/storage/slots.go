package storage

import (
	"context"
	"database/sql"
	"errors"
)

// SlotStore keeps session slots in the session_slots table.
type SlotStore struct {
	db *DB
}

// Slots returns the Postgres-backed session slot store.
func (db *DB) Slots() *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.connection.QueryRowContext(ctx, `SELECT value FROM session_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.connection.ExecContext(ctx, `
		INSERT INTO session_slots (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	return err
}
