package store

import (
	"context"
	"fmt"
)

// GetConvarInt reads a named integer. Returns sql.ErrNoRows (wrapped by the
// driver) when the key has never been set.
func (s *Store) GetConvarInt(ctx context.Context, key string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM convar_ints WHERE key = ?`, key).Scan(&v)
	return v, err
}

// SetConvarInt writes a named integer, creating the key if needed.
func (s *Store) SetConvarInt(ctx context.Context, key string, value int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO convar_ints (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set convar %s: %w", key, err)
	}
	return nil
}

// IncrConvarInt adds one to a named integer, starting it at one if absent.
func (s *Store) IncrConvarInt(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO convar_ints (key, value) VALUES (?, 1)
         ON CONFLICT(key) DO UPDATE SET value = value + 1`, key)
	if err != nil {
		return fmt.Errorf("increment convar %s: %w", key, err)
	}
	return nil
}

// GetConvarString reads a named string.
func (s *Store) GetConvarString(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM convar_strings WHERE key = ?`, key).Scan(&v)
	return v, err
}

// SetConvarString writes a named string, creating the key if needed.
func (s *Store) SetConvarString(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO convar_strings (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set convar %s: %w", key, err)
	}
	return nil
}
