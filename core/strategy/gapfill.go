package strategy

import (
	"sort"
	"time"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
)

// PlanDayFull runs base over the priced hours of the calendar day containing
// day (in the planning zone) and fills every missing clock hour with the
// base strategy's no-price decision, so the result covers the whole day with
// one unit per hour, sorted by moment.
//
// The input slice is not trusted: cells outside the target day are dropped
// and anything past the first 24 hours is truncated before planning.
func PlanDayFull(base BaseStrategy, cells market.DaySlice, day time.Time) []PriceChangeUnit {
	loc := clock.Market()
	dayStart, dayEnd := clock.DayRange(day, loc)

	var inDay market.DaySlice
	for _, cell := range cells {
		if clock.Contains(dayStart, dayEnd, cell.Moment) {
			inDay = append(inDay, cell)
		}
	}
	inDay = inDay.TruncateTo24Hours()

	plan := base.PlanDay(inDay)

	seen := make(map[time.Time]bool, 24)
	for _, unit := range plan {
		seen[clock.HourStart(unit.Moment, loc)] = true
	}

	for h := 0; h < 24; h++ {
		start := clock.DayHourStart(dayStart, h, loc)
		if seen[start] {
			continue
		}
		seen[start] = true
		plan = append(plan, base.PlanHour(start))
	}

	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Moment.Before(plan[j].Moment) })
	return plan
}
