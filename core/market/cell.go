package market

import (
	"sort"
	"time"
)

// PriceCell is one fetched market hour. Cells are immutable once fetched;
// their identity is the moment, and the store enforces at most one cell per
// moment.
type PriceCell struct {
	// Price is the raw exchange price for the hour.
	Price PricePerMWh
	// Moment is the start of the market hour.
	Moment time.Time
	// TariffPrice is the day/night network tariff component in force at
	// Moment, if it was attached at fetch time.
	TariffPrice *PricePerMWh
	// MarketHour is the exchange's own 0-23 hour label for the cell.
	MarketHour int
}

// Total returns the exchange price plus the tariff component, treating an
// absent tariff as zero.
func (c PriceCell) Total() PricePerMWh {
	if c.TariffPrice == nil {
		return c.Price
	}
	return c.Price.Add(*c.TariffPrice)
}

// DaySlice is the priced hours of (roughly) one calendar day. Input order is
// not trusted: slices may arrive unsorted, partial, or spanning more than one
// day.
type DaySlice []PriceCell

// Sorted returns a copy of the slice ordered by moment ascending.
func (d DaySlice) Sorted() DaySlice {
	out := make(DaySlice, len(d))
	copy(out, d)
	sort.Slice(out, func(i, j int) bool { return out[i].Moment.Before(out[j].Moment) })
	return out
}

// TruncateTo24Hours sorts the slice and drops every cell more than 23h59m59s
// after the earliest one, so an over-fetched slice collapses to a single
// day's worth of hours starting at its earliest moment.
func (d DaySlice) TruncateTo24Hours() DaySlice {
	sorted := d.Sorted()
	if len(sorted) == 0 {
		return sorted
	}
	cutoff := sorted[0].Moment.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	out := sorted[:0]
	for _, cell := range sorted {
		if !cell.Moment.After(cutoff) {
			out = append(out, cell)
		}
	}
	return out
}
