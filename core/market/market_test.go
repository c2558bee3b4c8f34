package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotswitch/spotswitch/core/clock"
)

func TestConvertsToCentsPerKWh(t *testing.T) {
	mwh := PricePerMWh{Value: decimal.New(14899, -2)} // 148.99
	kwh := mwh.ToCentsPerKWh()
	assert.True(t, kwh.Value.Equal(decimal.New(14899, -3)), "got %s", kwh.Value)
}

func TestConvertsToPricePerMWh(t *testing.T) {
	kwh := CentsPerKWh{Value: decimal.New(948, -2)} // 9.48
	mwh := kwh.ToPricePerMWh()
	assert.True(t, mwh.Value.Equal(decimal.New(948, -1)), "got %s", mwh.Value)
}

func TestTotalWithoutTariff(t *testing.T) {
	cell := PriceCell{Price: PricePerMWh{Value: decimal.NewFromInt(50)}}
	assert.True(t, cell.Total().Value.Equal(decimal.NewFromInt(50)))
}

func TestTotalWithTariff(t *testing.T) {
	tariff := PricePerMWh{Value: decimal.NewFromFloat(35.8)}
	cell := PriceCell{
		Price:       PricePerMWh{Value: decimal.NewFromFloat(50.2)},
		TariffPrice: &tariff,
	}
	assert.True(t, cell.Total().Value.Equal(decimal.NewFromInt(86)), "got %s", cell.Total().Value)
}

func sampleSlice(start time.Time, hours int) DaySlice {
	var out DaySlice
	for h := 0; h < hours; h++ {
		out = append(out, PriceCell{
			Price:      PricePerMWh{Value: decimal.NewFromInt(int64(100 + h))},
			Moment:     start.Add(time.Duration(h) * time.Hour),
			MarketHour: h % 24,
		})
	}
	return out
}

func TestSortedDoesNotMutate(t *testing.T) {
	start := time.Date(2022, 3, 3, 0, 0, 0, 0, clock.Market())
	cells := sampleSlice(start, 4)
	// Shuffle deterministically.
	cells[0], cells[3] = cells[3], cells[0]
	sorted := cells.Sorted()
	require.Len(t, sorted, 4)
	for i := 1; i < len(sorted); i++ {
		assert.True(t, sorted[i-1].Moment.Before(sorted[i].Moment))
	}
	assert.True(t, cells[0].Moment.After(cells[1].Moment), "input order should be untouched")
}

func TestTruncatesTo24Hours(t *testing.T) {
	start := time.Date(2022, 3, 3, 16, 0, 0, 0, clock.Market())
	cells := sampleSlice(start, 30)
	truncated := cells.TruncateTo24Hours()
	require.Len(t, truncated, 24)
	assert.True(t, truncated[0].Moment.Equal(start))
	last := truncated[len(truncated)-1].Moment
	assert.True(t, last.Sub(start) == 23*time.Hour)
}

func TestTruncateEmpty(t *testing.T) {
	var cells DaySlice
	assert.Empty(t, cells.TruncateTo24Hours())
}
