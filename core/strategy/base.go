package strategy

import (
	"time"

	"github.com/spotswitch/spotswitch/core/market"
	"github.com/spotswitch/spotswitch/core/tariff"
)

// HourStrategy plans a single hour with no price data available.
type HourStrategy interface {
	PlanHour(moment time.Time) PriceChangeUnit
}

// BaseStrategy produces the unconditional default pattern for a day. PlanDay
// emits one unit per input cell; it does not deduplicate or fill gaps, that
// is PlanDayFull's job.
type BaseStrategy interface {
	HourStrategy
	PlanDay(cells market.DaySlice) []PriceChangeUnit
}

// AlwaysOn keeps the load powered regardless of time or price.
type AlwaysOn struct{}

func (AlwaysOn) PlanHour(moment time.Time) PriceChangeUnit {
	return PriceChangeUnit{Moment: moment, State: On}
}

func (AlwaysOn) PlanDay(cells market.DaySlice) []PriceChangeUnit {
	return constantDay(cells, On)
}

// AlwaysOff keeps the load off regardless of time or price.
type AlwaysOff struct{}

func (AlwaysOff) PlanHour(moment time.Time) PriceChangeUnit {
	return PriceChangeUnit{Moment: moment, State: Off}
}

func (AlwaysOff) PlanDay(cells market.DaySlice) []PriceChangeUnit {
	return constantDay(cells, Off)
}

func constantDay(cells market.DaySlice, state PowerState) []PriceChangeUnit {
	out := make([]PriceChangeUnit, 0, len(cells))
	for i := range cells {
		out = append(out, PriceChangeUnit{Moment: cells[i].Moment, State: state, Price: &cells[i]})
	}
	return out
}

// TariffStrategy heats during the cheap network tariff: on through nights,
// weekends and holidays, off during working-day daytime.
type TariffStrategy struct{}

func tariffToState(t tariff.Tariff) PowerState {
	if t == tariff.Night {
		return On
	}
	return Off
}

func (TariffStrategy) PlanHour(moment time.Time) PriceChangeUnit {
	return PriceChangeUnit{Moment: moment, State: tariffToState(tariff.Class(moment))}
}

func (s TariffStrategy) PlanDay(cells market.DaySlice) []PriceChangeUnit {
	out := make([]PriceChangeUnit, 0, len(cells))
	for i := range cells {
		unit := s.PlanHour(cells[i].Moment)
		unit.Price = &cells[i]
		out = append(out, unit)
	}
	return out
}
