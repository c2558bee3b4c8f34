package nordpool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/market"
)

const sampleFeed = `{
  "data": {
    "Rows": [
      {
        "Name": "00 - 01",
        "Columns": [
          {"Name": "23-03-2022", "Value": "102,55"},
          {"Name": "24-03-2022", "Value": "98,10"}
        ]
      },
      {
        "Name": "01 - 02",
        "Columns": [
          {"Name": "23-03-2022", "Value": "95,00"},
          {"Name": "24-03-2022", "Value": "-"}
        ]
      },
      {
        "Name": "Average",
        "Columns": [
          {"Name": "23-03-2022", "Value": "99,00"}
        ]
      }
    ]
  }
}`

func TestDecodeSampleFeed(t *testing.T) {
	matrix, err := Decode([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, matrix, 2)

	first := matrix[0]
	assert.Equal(t, 23, first.Date.Day())
	require.Len(t, first.Cells, 2)
	assert.True(t, first.Cells[0].Price.Value.Equal(decimal.NewFromFloat(102.55)))
	assert.Equal(t, 0, first.Cells[0].MarketHour)
	wantMoment := time.Date(2022, 3, 23, 0, 0, 0, 0, clock.Market())
	assert.True(t, first.Cells[0].Moment.Equal(wantMoment))
	require.NotNil(t, first.Cells[0].TariffPrice, "tariff component attached at fetch time")

	// The second day's dash placeholder is skipped, not fatal.
	second := matrix[1]
	require.Len(t, second.Cells, 1)
	assert.Equal(t, 0, second.Cells[0].MarketHour)
}

func TestParseHour(t *testing.T) {
	h, err := parseHour("01 - 02")
	require.NoError(t, err)
	assert.Equal(t, 1, h)

	_, err = parseHour("Average")
	assert.Error(t, err)
	_, err = parseHour("")
	assert.Error(t, err)
}

func TestParseDateFormats(t *testing.T) {
	dmy, err := parseDate("23-03-2022")
	require.NoError(t, err)
	ymd, err2 := parseDate("2022-03-23")
	require.NoError(t, err2)
	assert.True(t, dmy.Equal(ymd))

	_, err = parseDate("tomorrow")
	assert.Error(t, err)
}

func TestParsePriceComma(t *testing.T) {
	p, err := parsePrice("102,55")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromFloat(102.55)))

	_, err = parsePrice("-")
	assert.Error(t, err)
}

type collectSink struct {
	cells []market.PriceCell
}

func (c *collectSink) InsertPriceCell(ctx context.Context, cell market.PriceCell) error {
	c.cells = append(c.cells, cell)
	return nil
}

func TestFetchAndPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := &Client{URL: srv.URL}
	matrix, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, matrix, 2)

	sink := &collectSink{}
	require.NoError(t, Persist(context.Background(), sink, matrix))
	assert.Len(t, sink.cells, 3)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &Client{URL: srv.URL}
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPriceChartHTML(t *testing.T) {
	matrix, err := Decode([]byte(sampleFeed))
	require.NoError(t, err)
	html, err := PriceChartHTML(matrix[0])
	require.NoError(t, err)
	assert.Contains(t, html, "2022-03-23")
}
