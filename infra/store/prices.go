package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
)

// InsertPriceCell stores one fetched market hour. A cell already present for
// the same moment is left untouched: fetched prices are immutable and keyed
// by instant.
func (s *Store) InsertPriceCell(ctx context.Context, cell market.PriceCell) error {
	var tariff sql.NullString
	if cell.TariffPrice != nil {
		tariff = sql.NullString{String: cell.TariffPrice.Value.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO price_cells (price_mwh, moment_utc, tariff_mwh, market_hour, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(moment_utc) DO NOTHING`,
		cell.Price.Value.String(), cell.Moment.Unix(), tariff, cell.MarketHour,
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert price cell: %w", err)
	}
	return nil
}

// PriceCells returns every stored cell of the calendar day containing day in
// the market zone. Missing data yields an empty slice, not an error.
func (s *Store) PriceCells(ctx context.Context, day time.Time) (market.DaySlice, error) {
	start, end := clock.DayRange(day, clock.Market())
	rows, err := s.db.QueryContext(ctx,
		`SELECT price_mwh, moment_utc, tariff_mwh, market_hour FROM price_cells
         WHERE moment_utc >= ? AND moment_utc < ? ORDER BY moment_utc`,
		start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("query price cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out market.DaySlice
	for rows.Next() {
		var priceStr string
		var moment int64
		var tariff sql.NullString
		var marketHour int
		if err := rows.Scan(&priceStr, &moment, &tariff, &marketHour); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price %q: %w", priceStr, err)
		}
		cell := market.PriceCell{
			Price:      market.PricePerMWh{Value: price},
			Moment:     time.Unix(moment, 0).In(clock.Market()),
			MarketHour: marketHour,
		}
		if tariff.Valid {
			tv, err := decimal.NewFromString(tariff.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt tariff %q: %w", tariff.String, err)
			}
			cell.TariffPrice = &market.PricePerMWh{Value: tv}
		}
		out = append(out, cell)
	}
	return out, rows.Err()
}
