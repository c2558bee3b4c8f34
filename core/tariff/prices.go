package tariff

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/market"
)

// pricePeriod is one revision of the network tariff prices. Periods are kept
// ordered by EffectiveFrom ascending; a lookup picks the last period whose
// start is not after the instant.
type pricePeriod struct {
	EffectiveFrom time.Time
	DayPrice      market.CentsPerKWh
	NightPrice    market.CentsPerKWh
}

// The historical revisions of the scattered tariff constants, folded into one
// ordered table. Only the currently published prices survive in the tariff
// sheet: day 6.16 c/kWh, night 3.58 c/kWh.
var pricePeriods = []pricePeriod{
	{
		EffectiveFrom: time.Time{},
		DayPrice:      market.CentsPerKWh{Value: decimal.New(616, -2)},
		NightPrice:    market.CentsPerKWh{Value: decimal.New(358, -2)},
	},
}

func periodAt(t time.Time) pricePeriod {
	period := pricePeriods[0]
	for _, p := range pricePeriods[1:] {
		if p.EffectiveFrom.After(t) {
			break
		}
		period = p
	}
	return period
}

// PriceAt returns the network tariff component in force at t, in the market
// quotation: the night price when t classifies as Night, the day price
// otherwise.
func PriceAt(t time.Time) market.PricePerMWh {
	period := periodAt(t)
	switch Class(t) {
	case Night:
		return period.NightPrice.ToPricePerMWh()
	default:
		return period.DayPrice.ToPricePerMWh()
	}
}
