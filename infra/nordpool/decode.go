// Package nordpool fetches and decodes the Nord Pool day-ahead JSON feed.
// The feed is a matrix: one row per market hour, one column per delivery
// date, prices as comma-decimal strings.
package nordpool

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
	"github.com/spotswitch/spotswitch/core/tariff"
)

// DateColumn is one delivery day's decoded cells.
type DateColumn struct {
	Date  time.Time
	Cells market.DaySlice
}

type feedCell struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type feedRow struct {
	Name    string     `json:"Name"`
	Columns []feedCell `json:"Columns"`
}

type feed struct {
	Data struct {
		Rows []feedRow `json:"Rows"`
	} `json:"data"`
}

// parsePrice converts a comma-decimal feed price like "102,55" to a decimal.
func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

// parseHour extracts the leading hour from a row label like "01 - 02".
func parseHour(s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("hour label too short: %q", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("parse hour label %q: %w", s, err)
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	return h, nil
}

// parseDate accepts the feed's DD-MM-YYYY datelines as well as ISO
// YYYY-MM-DD, yielding local midnight in the market zone.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if d, err := time.ParseInLocation(layout, s, clock.Market()); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse dateline %q", s)
}

// Decode parses the feed body into per-day columns sorted by date.
// Unparsable hours and cells are skipped; the feed routinely carries
// placeholder rows.
func Decode(body []byte) ([]DateColumn, error) {
	var f feed
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	byDate := make(map[string]*DateColumn)
	for _, row := range f.Data.Rows {
		hour, err := parseHour(row.Name)
		if err != nil {
			continue
		}
		for _, cell := range row.Columns {
			date, err := parseDate(cell.Name)
			if err != nil {
				return nil, err
			}
			col, ok := byDate[cell.Name]
			if !ok {
				col = &DateColumn{Date: date}
				byDate[cell.Name] = col
			}
			price, err := parsePrice(cell.Value)
			if err != nil {
				continue
			}
			moment := clock.DayHourStart(date, hour, clock.Market())
			tariffPrice := tariff.PriceAt(moment)
			col.Cells = append(col.Cells, market.PriceCell{
				Price:       market.PricePerMWh{Value: price},
				Moment:      moment,
				TariffPrice: &tariffPrice,
				MarketHour:  hour,
			})
		}
	}

	out := make([]DateColumn, 0, len(byDate))
	for _, col := range byDate {
		col.Cells = col.Cells.Sorted()
		out = append(out, *col)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
