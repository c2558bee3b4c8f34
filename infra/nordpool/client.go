package nordpool

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spotswitch/spotswitch/core/market"
)

// PriceSink receives decoded cells for persistence.
type PriceSink interface {
	InsertPriceCell(ctx context.Context, cell market.PriceCell) error
}

// Client fetches the day-ahead price feed over HTTP.
type Client struct {
	URL  string
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Fetch retrieves and decodes the feed.
func (c *Client) Fetch(ctx context.Context) ([]DateColumn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return Decode(body)
}

// Persist writes every decoded cell to the sink. Cells already stored for
// their moment are left untouched by the sink.
func Persist(ctx context.Context, sink PriceSink, matrix []DateColumn) error {
	for _, col := range matrix {
		for _, cell := range col.Cells {
			if err := sink.InsertPriceCell(ctx, cell); err != nil {
				return fmt.Errorf("persist cell at %s: %w", cell.Moment.Format("2006-01-02 15:04"), err)
			}
		}
	}
	return nil
}
