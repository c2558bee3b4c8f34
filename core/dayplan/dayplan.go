// Package dayplan models the per-weekday planning configuration: which base
// pattern to run, which price mask to apply on top, and which hours are
// forced on or off outright. The configuration is TOML, stored as raw text
// in the database and versioned by row id.
package dayplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/market"
	"github.com/spotswitch/spotswitch/core/strategy"
)

// BasePlan selects the base pattern for a day. Mode is one of "AlwaysOff",
// "AlwaysOn" or "Tariff".
type BasePlan struct {
	Mode string `koanf:"mode"`
}

// Mask selects the price mask for a day. Mode is one of "None", "Limit" or
// "Smart"; the remaining fields apply to the mode that names them.
type Mask struct {
	Mode string `koanf:"mode"`
	// Limit is the price ceiling for Limit mode, in EUR/MWh.
	Limit float64 `koanf:"limit"`
	// HourBudget caps the number of on-hours Smart mode may grant.
	HourBudget int `koanf:"hour_budget"`
	// MorningHours reserves part of the budget for local hours 0-6.
	MorningHours int `koanf:"morning_hours"`
	// HardLimit is Smart mode's absolute ceiling, in EUR/MWh.
	HardLimit float64 `koanf:"hard_limit"`
}

// Day is one weekday's planning configuration. All fields are optional: a
// zero Day means tariff base, no mask, no forced hours.
type Day struct {
	HoursAlwaysOn  []int     `koanf:"hours_always_on"`
	HoursAlwaysOff []int     `koanf:"hours_always_off"`
	Base           *BasePlan `koanf:"base"`
	Strategy       *Mask     `koanf:"strategy"`
}

// File is the whole week's configuration.
type File struct {
	Monday    Day `koanf:"monday"`
	Tuesday   Day `koanf:"tuesday"`
	Wednesday Day `koanf:"wednesday"`
	Thursday  Day `koanf:"thursday"`
	Friday    Day `koanf:"friday"`
	Saturday  Day `koanf:"saturday"`
	Sunday    Day `koanf:"sunday"`
}

// DayFor returns the configuration for the given weekday.
func (f *File) DayFor(wd time.Weekday) *Day {
	switch wd {
	case time.Monday:
		return &f.Monday
	case time.Tuesday:
		return &f.Tuesday
	case time.Wednesday:
		return &f.Wednesday
	case time.Thursday:
		return &f.Thursday
	case time.Friday:
		return &f.Friday
	case time.Saturday:
		return &f.Saturday
	default:
		return &f.Sunday
	}
}

// Parse decodes TOML configuration text and validates it.
func Parse(data []byte) (*File, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), toml.Parser()); err != nil {
		return nil, fmt.Errorf("parse day config: %w", err)
	}
	var f File
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode day config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// BaseStrategy resolves the day's base pattern. An absent base means the
// tariff pattern.
func (d *Day) BaseStrategy() (strategy.BaseStrategy, error) {
	if d.Base == nil {
		return strategy.TariffStrategy{}, nil
	}
	switch d.Base.Mode {
	case "AlwaysOn":
		return strategy.AlwaysOn{}, nil
	case "AlwaysOff":
		return strategy.AlwaysOff{}, nil
	case "Tariff":
		return strategy.TariffStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown base mode %q", d.Base.Mode)
	}
}

// MaskStrategy resolves the day's price mask. An absent strategy means the
// base plan passes through unchanged.
func (d *Day) MaskStrategy() (strategy.MaskStrategy, error) {
	if d.Strategy == nil {
		return strategy.NoneStrategy{}, nil
	}
	switch d.Strategy.Mode {
	case "", "None":
		return strategy.NoneStrategy{}, nil
	case "Limit":
		return strategy.PriceLimitStrategy{
			Limit: market.PricePerMWh{Value: decimal.NewFromFloat(d.Strategy.Limit)},
		}, nil
	case "Smart":
		return strategy.SmartStrategy{
			HourBudget:   d.Strategy.HourBudget,
			MorningHours: d.Strategy.MorningHours,
			HardLimit:    market.PricePerMWh{Value: decimal.NewFromFloat(d.Strategy.HardLimit)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy mode %q", d.Strategy.Mode)
	}
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Validate rejects impossible configurations: out-of-range hours, an hour
// named in both the always-on and always-off sets, and malformed strategy
// parameters. Conflicting override sets are an error rather than a silent
// precedence choice.
func (f *File) Validate() error {
	for _, wd := range weekdays {
		d := f.DayFor(wd)
		name := strings.ToLower(wd.String())
		onSet := make(map[int]bool, len(d.HoursAlwaysOn))
		for _, h := range d.HoursAlwaysOn {
			if h < 0 || h > 23 {
				return fmt.Errorf("%s: always-on hour %d out of range", name, h)
			}
			onSet[h] = true
		}
		for _, h := range d.HoursAlwaysOff {
			if h < 0 || h > 23 {
				return fmt.Errorf("%s: always-off hour %d out of range", name, h)
			}
			if onSet[h] {
				return fmt.Errorf("%s: hour %d is both always-on and always-off", name, h)
			}
		}
		if _, err := d.BaseStrategy(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := d.MaskStrategy(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d.Strategy != nil && d.Strategy.Mode == "Smart" {
			if d.Strategy.HourBudget < 0 || d.Strategy.HourBudget > 24 {
				return fmt.Errorf("%s: smart hour budget %d out of range", name, d.Strategy.HourBudget)
			}
			if d.Strategy.MorningHours < 0 {
				return fmt.Errorf("%s: smart morning hours %d negative", name, d.Strategy.MorningHours)
			}
		}
	}
	return nil
}
