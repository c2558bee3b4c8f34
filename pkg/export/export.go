// Package export serializes day plans for machine consumption.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"github.com/spotswitch/spotswitch/core/strategy"
)

// PlanEntry is the wire form of one planned hour.
type PlanEntry struct {
	Moment      time.Time `json:"moment"`
	State       string    `json:"state"`
	PriceEURMWh string    `json:"price_eur_mwh,omitempty"`
	TotalEURMWh string    `json:"total_eur_mwh,omitempty"`
}

// Entries converts planned hours to their wire form. Hours without market
// data carry empty price fields.
func Entries(units []strategy.PriceChangeUnit) []PlanEntry {
	out := make([]PlanEntry, 0, len(units))
	for _, u := range units {
		e := PlanEntry{Moment: u.Moment, State: u.State.String()}
		if u.Price != nil {
			e.PriceEURMWh = u.Price.Price.Value.String()
			e.TotalEURMWh = u.Price.Total().Value.String()
		}
		out = append(out, e)
	}
	return out
}

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, units []strategy.PriceChangeUnit) error {
	enc := json.NewEncoder(w)
	return enc.Encode(Entries(units))
}

// WriteCSV writes the plan to w in CSV format.
func WriteCSV(w io.Writer, units []strategy.PriceChangeUnit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"moment", "state", "price_eur_mwh", "total_eur_mwh"}); err != nil {
		return err
	}
	for _, e := range Entries(units) {
		rec := []string{
			e.Moment.Format(time.RFC3339),
			e.State,
			e.PriceEURMWh,
			e.TotalEURMWh,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
