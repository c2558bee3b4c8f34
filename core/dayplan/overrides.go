package dayplan

import (
	"time"

	"github.com/spotswitch/spotswitch/core/strategy"
)

// Override is one forced (weekday, local hour) state derived from a Day's
// always-on/always-off sets. Overrides carry the highest precedence in the
// pipeline.
type Override struct {
	Weekday time.Weekday
	Hour    int
	State   strategy.PowerState
}

func appendDay(out []Override, d *Day, wd time.Weekday) []Override {
	for _, h := range d.HoursAlwaysOn {
		out = append(out, Override{Weekday: wd, Hour: h, State: strategy.On})
	}
	for _, h := range d.HoursAlwaysOff {
		out = append(out, Override{Weekday: wd, Hour: h, State: strategy.Off})
	}
	return out
}

// Overrides flattens every weekday's forced hours into one list.
func (f *File) Overrides() []Override {
	var out []Override
	for _, wd := range weekdays {
		out = appendDay(out, f.DayFor(wd), wd)
	}
	return out
}

// ApplyOverrides rewrites plan entries whose local weekday and hour match a
// configured override, replacing whatever the base and mask stages decided.
func ApplyOverrides(plan []strategy.PriceChangeUnit, f *File, loc *time.Location) {
	overrides := f.Overrides()
	if len(overrides) == 0 {
		return
	}
	for i := range plan {
		local := plan[i].Moment.In(loc)
		wd, hour := local.Weekday(), local.Hour()
		for _, o := range overrides {
			if o.Weekday == wd && o.Hour == hour {
				plan[i].State = o.State
				break
			}
		}
	}
}
