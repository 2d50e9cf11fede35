package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KV is the persistence surface the engine components write through.
// Values are opaque bytes; callers own their serialization.
type KV interface {
	// Load returns the value stored under key, or ok=false when absent.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
	// Remove deletes the value stored under key. Removing an absent key
	// is not an error.
	Remove(ctx context.Context, key string) error
}

// Fixed KV keys used by the engine.
const (
	KeyTracking = "tracking"
	KeyProgress = "progress"
)

type sqliteKV struct {
	db *sql.DB
}

func (s *sqliteKV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return value, true, nil
}

func (s *sqliteKV) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
