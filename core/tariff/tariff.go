// Package tariff classifies instants into the Estonian day/night network
// tariff and prices the tariff component per effective period.
package tariff

import (
	"time"

	"github.com/spotswitch/spotswitch/core/clock"
)

// Tariff is the network price tier in force at an instant.
type Tariff int

const (
	// Night is the cheap tier: nights, weekends and national holidays.
	Night Tariff = iota
	// Day is the expensive tier: working-day daytime hours.
	Day
)

func (t Tariff) String() string {
	if t == Night {
		return "night"
	}
	return "day"
}

func daytimeTariff(hour int) Tariff {
	if hour < 7 || hour >= 22 {
		return Night
	}
	return Day
}

// Class returns the tariff in force at t. The decision is made in the local
// zone: weekends and national holidays are Night for the whole day, working
// days are Day between 07:00 and 22:00 local and Night otherwise.
func Class(t time.Time) Tariff {
	local := t.In(clock.Local())
	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday || IsNationalHoliday(local) {
		return Night
	}
	return daytimeTariff(local.Hour())
}
