package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// KV is the read/write surface the rest of the app depends on.
type KV interface {
	// Save serializes v as JSON and writes it under key. Write failures
	// are logged and swallowed: losing one progress write is preferable
	// to failing a study action that already succeeded.
	Save(ctx context.Context, key string, v any)

	// Load reads key into out, reporting whether anything usable was
	// found. A missing key or an undecodable value leaves out untouched
	// and returns false, so callers keep their defaults.
	Load(ctx context.Context, key string, out any) bool
}

var _ KV = (*Store)(nil)

// Save implements KV.
func (s *Store) Save(ctx context.Context, key string, v any) {
	if err := s.save(ctx, key, v); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save %q: %v\n", key, err)
	}
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Load implements KV.
func (s *Store) Load(ctx context.Context, key string, out any) bool {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: load %q: %v\n", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		fmt.Fprintf(os.Stderr, "warning: load %q: undecodable value: %v\n", key, err)
		return false
	}
	return true
}
