// Package clock provides timezone-correct hour and day boundary arithmetic.
// Planning happens in the market zone, tariff and override rules in the local
// zone; the two differ for an Estonian load trading on the Berlin-quoted
// system price.
package clock

import (
	"fmt"
	"time"
)

var (
	marketLocation = func() *time.Location {
		loc, err := time.LoadLocation("Europe/Berlin")
		if err != nil {
			panic(fmt.Errorf("failed to load market location: %w", err))
		}
		return loc
	}()

	localLocation = func() *time.Location {
		loc, err := time.LoadLocation("Europe/Tallinn")
		if err != nil {
			panic(fmt.Errorf("failed to load local location: %w", err))
		}
		return loc
	}()
)

// Market returns the zone in which day-ahead prices are quoted and plans are
// keyed.
func Market() *time.Location { return marketLocation }

// Local returns the zone in which tariff, holiday and override rules apply.
func Local() *time.Location { return localLocation }

// SetZones overrides the market and local zones. Intended to be called once
// from configuration loading before any planning starts.
func SetZones(market, local string) error {
	m, err := time.LoadLocation(market)
	if err != nil {
		return fmt.Errorf("load market zone %q: %w", market, err)
	}
	l, err := time.LoadLocation(local)
	if err != nil {
		return fmt.Errorf("load local zone %q: %w", local, err)
	}
	marketLocation, localLocation = m, l
	return nil
}

// HourStart returns the beginning of the clock hour containing t, in loc.
// Going through time.Date keeps the result correct across DST transitions.
func HourStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
}

// HourRange returns the half-open range [start, end) of the clock hour
// containing t, in loc.
func HourRange(t time.Time, loc *time.Location) (start, end time.Time) {
	start = HourStart(t, loc)
	return start, start.Add(time.Hour)
}

// DayStart returns local midnight of the calendar day containing t, in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayRange returns the half-open range [start, end) of the calendar day
// containing t, in loc. The end is the next local midnight, so the range is
// 23 or 25 hours long on DST transition days.
func DayRange(t time.Time, loc *time.Location) (start, end time.Time) {
	start = DayStart(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// DayHourStart returns the beginning of clock hour h on the calendar day
// containing day, in loc.
func DayHourStart(day time.Time, h int, loc *time.Location) time.Time {
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc)
}

// Contains reports whether t falls within the half-open range [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
