package store

import (
	"context"
	"fmt"
	"time"

	"github.com/spotswitch/spotswitch/core/strategy"
)

// RecordSwitch appends one actuation event to the switch log and returns the
// new row id.
func (s *Store) RecordSwitch(ctx context.Context, state strategy.PowerState) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO switch_records (state, created_at) VALUES (?, ?)`,
		int(state), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("record switch: %w", err)
	}
	return res.LastInsertId()
}

// SwitchCount returns the number of recorded actuations since the given
// time.
func (s *Store) SwitchCount(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM switch_records WHERE created_at >= ?`,
		since.Unix()).Scan(&n)
	return n, err
}
