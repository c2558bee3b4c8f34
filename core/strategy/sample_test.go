package strategy

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
)

// 2022-03-21 is a Monday with no DST transition in either zone.
func sampleDayStart() time.Time {
	return time.Date(2022, 3, 21, 0, 0, 0, 0, clock.Market())
}

// sampleDaySpecified builds sequential hourly cells from startHour with the
// given prices and no tariff component.
func sampleDaySpecified(prices []float64, startHour int) market.DaySlice {
	start := sampleDayStart().Add(time.Duration(startHour) * time.Hour)
	var out market.DaySlice
	for i, p := range prices {
		out = append(out, market.PriceCell{
			Price:      market.PricePerMWh{Value: decimal.NewFromFloat(p)},
			Moment:     start.Add(time.Duration(i) * time.Hour),
			MarketHour: (startHour + i) % 24,
		})
	}
	return out
}

// sampleDaySparse builds cells for a random subset of the day's hours.
func sampleDaySparse(day time.Time, rng *rand.Rand) market.DaySlice {
	var out market.DaySlice
	for h := 0; h < 24; h++ {
		if rng.Intn(2) == 0 {
			continue
		}
		price := float64(rng.Intn(19000)+100) / 100
		out = append(out, market.PriceCell{
			Price:      market.PricePerMWh{Value: decimal.NewFromFloat(price)},
			Moment:     clock.DayHourStart(day, h, clock.Market()),
			MarketHour: h,
		})
	}
	// Planning must tolerate unsorted input.
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
