package strategy

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
)

// MaskStrategy consumes a gap-filled base plan and may flip some hours based
// on price. Implementations return the same set of moments as the input,
// never inventing or dropping hours.
type MaskStrategy interface {
	PlanDayMasked(base []PriceChangeUnit) []PriceChangeUnit
}

// NoneStrategy passes the base plan through unchanged.
type NoneStrategy struct{}

func (NoneStrategy) PlanDayMasked(base []PriceChangeUnit) []PriceChangeUnit {
	out := make([]PriceChangeUnit, len(base))
	copy(out, base)
	return out
}

// PriceLimitStrategy forces off every priced hour whose total price exceeds
// the limit. Hours at or below the limit, and hours without price data, keep
// the base plan's state.
type PriceLimitStrategy struct {
	Limit market.PricePerMWh
}

func (s PriceLimitStrategy) PlanDayMasked(base []PriceChangeUnit) []PriceChangeUnit {
	out := make([]PriceChangeUnit, len(base))
	copy(out, base)
	for i := range out {
		if out[i].Price == nil {
			continue
		}
		if out[i].Price.Total().GreaterThan(s.Limit) {
			out[i].State = Off
		}
	}
	return out
}

// minPricedEntries is the information floor for smart ranking: with fewer
// priced hours the ordering is meaningless and the mask becomes a no-op.
const minPricedEntries = 20

// morningEnd is the exclusive upper bound of the reserved morning window,
// local hours [0, 7).
const morningEnd = 7

// SmartStrategy rations a fixed budget of on-hours to the cheapest hours of
// the day. Up to MorningHours of the budget is reserved for the cheapest
// local-morning hours so the tank is warm before breakfast, the rest goes to
// the cheapest remaining hours of the whole day. HardLimit is an absolute
// price ceiling applied after selection: a selected hour above it is forced
// off without freeing its budget slot.
type SmartStrategy struct {
	HourBudget   int
	MorningHours int
	HardLimit    market.PricePerMWh
}

// rankKey orders units for selection. Unpriced units rank at the day's
// average so they sort neither cheapest nor dearest.
func rankKey(u PriceChangeUnit, average decimal.Decimal) decimal.Decimal {
	if u.Price == nil {
		return average
	}
	return u.Price.Total().Value
}

func (s SmartStrategy) PlanDayMasked(base []PriceChangeUnit) []PriceChangeUnit {
	out := make([]PriceChangeUnit, len(base))
	copy(out, base)

	priced := 0
	sum := decimal.Zero
	for _, u := range out {
		if u.Price != nil {
			priced++
			sum = sum.Add(u.Price.Total().Value)
		}
	}
	if priced < minPricedEntries {
		return out
	}
	average := sum.Div(decimal.NewFromInt(int64(priced)))

	morningBudget := s.MorningHours
	if morningBudget < 0 {
		morningBudget = 0
	}
	if morningBudget > morningEnd {
		morningBudget = morningEnd
	}

	var morning, rest []*PriceChangeUnit
	for i := range out {
		if out[i].Moment.In(clock.Local()).Hour() < morningEnd {
			morning = append(morning, &out[i])
		} else {
			rest = append(rest, &out[i])
		}
	}

	sort.SliceStable(morning, func(i, j int) bool {
		return rankKey(*morning[i], average).LessThan(rankKey(*morning[j], average))
	})
	reserved := morningBudget
	if reserved > len(morning) {
		reserved = len(morning)
	}

	selected := make(map[*PriceChangeUnit]bool, s.HourBudget)
	for _, u := range morning[:reserved] {
		selected[u] = true
	}

	// Leftover morning hours re-enter the global ranking after the
	// non-morning hours, keeping the merge order stable for ties.
	remainder := append(append([]*PriceChangeUnit{}, morning[reserved:]...), rest...)
	sort.SliceStable(remainder, func(i, j int) bool {
		return rankKey(*remainder[i], average).LessThan(rankKey(*remainder[j], average))
	})

	// The reserved slots consume MorningHours of the budget even when fewer
	// morning entries existed; the shortfall is not redistributed.
	remainingBudget := s.HourBudget - morningBudget
	if remainingBudget < 0 {
		remainingBudget = 0
	}
	for _, u := range remainder {
		if remainingBudget == 0 {
			break
		}
		selected[u] = true
		remainingBudget--
	}

	for i := range out {
		if selected[&out[i]] {
			out[i].State = On
		} else {
			out[i].State = Off
		}
	}

	// Hard-limit pass, strictly after selection: rejected hours do not free
	// budget for another hour.
	for i := range out {
		if out[i].State == On && out[i].Price != nil && out[i].Price.Total().GreaterThan(s.HardLimit) {
			out[i].State = Off
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Moment.Before(out[j].Moment) })
	return out
}
