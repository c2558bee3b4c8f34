package tariff

import (
	"fmt"
	"time"
)

type monthDay struct {
	month time.Month
	day   int
}

// Estonian national holidays with fixed dates.
var fixedNationalHolidays = []monthDay{
	{time.January, 1},   // uusaasta
	{time.May, 1},       // kevadpüha
	{time.June, 23},     // võidupüha
	{time.June, 24},     // jaanipäev
	{time.August, 20},   // taasiseseisvumispäev
	{time.December, 24}, // jõululaupäev
	{time.December, 25}, // 1. jõulupüha
	{time.December, 26}, // 2. jõulupüha
}

// easterSunday computes Gregorian Easter Sunday for the year using the
// anonymous Gregorian computus. Years outside the Gregorian calendar's
// validity are rejected.
func easterSunday(year int) (time.Time, error) {
	if year < 1583 || year > 4099 {
		return time.Time{}, fmt.Errorf("easter undefined for year %d", year)
	}
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// movingNationalHolidays returns Easter Sunday, Good Friday and Pentecost for
// the year as month/day pairs.
func movingNationalHolidays(year int) ([]monthDay, error) {
	easter, err := easterSunday(year)
	if err != nil {
		return nil, err
	}
	goodFriday := easter.AddDate(0, 0, -2)
	pentecost := easter.AddDate(0, 0, 49)
	return []monthDay{
		{easter.Month(), easter.Day()},
		{goodFriday.Month(), goodFriday.Day()},
		{pentecost.Month(), pentecost.Day()},
	}, nil
}

func matchesAny(days []monthDay, t time.Time) bool {
	for _, md := range days {
		if md.month == t.Month() && md.day == t.Day() {
			return true
		}
	}
	return false
}

// IsNationalHoliday reports whether t falls on an Estonian national holiday,
// by month and day in t's own location. When the Easter computation fails for
// a pathological year the moving holidays are treated as absent rather than
// failing the caller; holiday detection fails open.
func IsNationalHoliday(t time.Time) bool {
	if matchesAny(fixedNationalHolidays, t) {
		return true
	}
	moving, err := movingNationalHolidays(t.Year())
	if err != nil {
		return false
	}
	return matchesAny(moving, t)
}
