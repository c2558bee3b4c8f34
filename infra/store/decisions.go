package store

import (
	"context"
	"fmt"
	"time"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/strategy"
)

// CachedDay returns the cached decisions of the calendar day containing day,
// for the given configuration. Read-back rows carry no price reference. The
// read is capped at 48 rows so a day polluted by repeated forced replans
// cannot balloon the result.
func (s *Store) CachedDay(ctx context.Context, day time.Time, configID int64) ([]strategy.PriceChangeUnit, error) {
	start, end := clock.DayRange(day, clock.Market())
	rows, err := s.db.QueryContext(ctx,
		`SELECT moment_utc, state FROM power_states
         WHERE moment_utc >= ? AND moment_utc < ? AND configuration_id = ?
         ORDER BY moment_utc LIMIT 48`,
		start.Unix(), end.Unix(), configID)
	if err != nil {
		return nil, fmt.Errorf("query cached day: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []strategy.PriceChangeUnit
	for rows.Next() {
		var moment int64
		var state int
		if err := rows.Scan(&moment, &state); err != nil {
			return nil, err
		}
		out = append(out, strategy.PriceChangeUnit{
			Moment: time.Unix(moment, 0).In(clock.Market()),
			State:  strategy.StateFromInt(state),
		})
	}
	return out, rows.Err()
}

// UpsertDecision caches one decision. Insert-if-absent: replanning the same
// day with identical inputs never duplicates rows or rewrites an existing
// decision for the hour.
func (s *Store) UpsertDecision(ctx context.Context, moment time.Time, state strategy.PowerState, configID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO power_states (moment_utc, state, configuration_id, created_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(moment_utc, configuration_id) DO NOTHING`,
		moment.Unix(), int(state), configID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert decision: %w", err)
	}
	return nil
}

