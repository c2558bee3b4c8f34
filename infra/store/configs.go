package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spotswitch/spotswitch/core/dayplan"
)

// configLookback bounds how many stored revisions ActiveConfig will try
// before giving up.
const configLookback = 10

// configFailuresKey counts consecutive configuration parse failures, kept as
// telemetry in the convar table.
const configFailuresKey = "config_failures"

// ErrNoUsableConfig is returned when every candidate revision within the
// lookback window fails to parse.
var ErrNoUsableConfig = errors.New("no usable day configuration")

// InsertConfigTOML stores a new configuration revision and returns its id.
// The text is parsed first so a syntactically broken revision is rejected at
// the door instead of poisoning the store.
func (s *Store) InsertConfigTOML(ctx context.Context, text string) (int64, error) {
	if _, err := dayplan.Parse([]byte(text)); err != nil {
		return 0, fmt.Errorf("refusing broken configuration: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO day_configurations (toml, created_at) VALUES (?, ?)`,
		text, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert configuration: %w", err)
	}
	return res.LastInsertId()
}

// ActiveConfig resolves the newest usable configuration revision.
//
// An empty table is seeded with the bundled default. A revision that fails
// to parse is marked known_broken and the next most recent one is tried,
// bounded to the last ten; each failure bumps the failure counter, a success
// resets it. Exhausting every candidate is fatal for the planning run.
func (s *Store) ActiveConfig(ctx context.Context) (int64, *dayplan.File, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, toml FROM day_configurations
         WHERE known_broken = 0 ORDER BY id DESC LIMIT ?`, configLookback)
	if err != nil {
		return 0, nil, fmt.Errorf("query configurations: %w", err)
	}
	type candidate struct {
		id   int64
		toml string
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.toml); err != nil {
			_ = rows.Close()
			return 0, nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, nil, err
	}
	_ = rows.Close()

	if len(candidates) == 0 {
		id, err := s.seedDefaultConfig(ctx)
		if err != nil {
			return 0, nil, err
		}
		return id, dayplan.Default(), nil
	}

	for _, c := range candidates {
		file, err := dayplan.Parse([]byte(c.toml))
		if err != nil {
			if merr := s.markConfigBroken(ctx, c.id); merr != nil {
				return 0, nil, merr
			}
			continue
		}
		if err := s.SetConvarInt(ctx, configFailuresKey, 0); err != nil {
			return 0, nil, err
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE day_configurations SET tried = 1 WHERE id = ?`, c.id); err != nil {
			return 0, nil, err
		}
		return c.id, file, nil
	}
	return 0, nil, ErrNoUsableConfig
}

func (s *Store) seedDefaultConfig(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO day_configurations (toml, tried, created_at) VALUES (?, 1, ?)`,
		string(dayplan.DefaultTOML), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("seed default configuration: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) markConfigBroken(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE day_configurations SET known_broken = 1, tried = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark configuration %d broken: %w", id, err)
	}
	return s.IncrConvarInt(ctx, configFailuresKey)
}

// ConfigFailures returns the current consecutive-failure counter.
func (s *Store) ConfigFailures(ctx context.Context) (int64, error) {
	n, err := s.GetConvarInt(ctx, configFailuresKey)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}
