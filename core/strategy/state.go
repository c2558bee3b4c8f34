// Package strategy implements the day planning pipeline: base power
// strategies derive a full-day pattern from timing rules, masking strategies
// override hours using market prices, and overrides force configured states.
package strategy

import (
	"time"

	"github.com/spotswitch/spotswitch/core/market"
)

// PowerState is the switch decision for one hour. There is no third state.
type PowerState int

const (
	Off PowerState = 0
	On  PowerState = 1
)

func (s PowerState) String() string {
	if s == On {
		return "on"
	}
	return "off"
}

// StateFromInt maps a persisted integer back to a state. Unknown values
// collapse to Off, the safe side for a heating load.
func StateFromInt(n int) PowerState {
	if n == 1 {
		return On
	}
	return Off
}

// PriceChangeUnit is one hour's finalized decision. Price is nil for hours
// synthesized by gap filling or read back from the cache; such entries have
// no market data backing them.
type PriceChangeUnit struct {
	Moment time.Time
	State  PowerState
	Price  *market.PriceCell
}
