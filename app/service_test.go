package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotswitch/spotswitch/config"
	"github.com/spotswitch/spotswitch/core/clock"
)

const feedBody = `{
  "data": {
    "Rows": [
      {"Name": "00 - 01", "Columns": [{"Name": "23-03-2022", "Value": "102,55"}]},
      {"Name": "01 - 02", "Columns": [{"Name": "23-03-2022", "Value": "95,00"}]}
    ]
  }
}`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func testConfig(t *testing.T, feedURL, onURL, offURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Market:   config.MarketConfig{FeedURL: feedURL},
		Webhooks: config.WebhookConfig{OnURL: onURL, OffURL: offURL},
	}
	cfg.Database.Path = filepath.Join(dir, "test.db")
	cfg.Scheduler.SetDefaults()
	cfg.Scheduler.LockFile = filepath.Join(dir, "test.lock")
	cfg.Server.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Timezones.SetDefaults()
	return cfg
}

func TestServiceFetchAndHour(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer feed.Close()

	var applied atomic.Int64
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applied.Add(1)
	}))
	defer relay.Close()

	svc, err := New(testConfig(t, feed.URL, relay.URL, relay.URL))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx := context.Background()
	require.NoError(t, svc.Fetch(ctx))

	cells, err := svc.Store.PriceCells(ctx, time.Date(2022, 3, 23, 12, 0, 0, 0, clock.Market()))
	require.NoError(t, err)
	assert.Len(t, cells, 2)

	// Plan and enact for an hour covered by the stored prices.
	now := time.Date(2022, 3, 23, 1, 30, 0, 0, clock.Market())
	require.NoError(t, svc.Hour(ctx, now, false, true))
	assert.Equal(t, int64(1), applied.Load())

	// Without enact, planning leaves the switch untouched.
	require.NoError(t, svc.Hour(ctx, now, false, false))
	assert.Equal(t, int64(1), applied.Load())
}

func TestServiceReinsertConfig(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer feed.Close()

	svc, err := New(testConfig(t, feed.URL, "", ""))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	path := filepath.Join(t.TempDir(), "days.toml")
	writeFile(t, path, `[monday.base]
mode = "AlwaysOn"

[saturday]
hours_always_off = [3]
`)

	id, err := svc.ReinsertConfig(context.Background(), path)
	require.NoError(t, err)
	assert.Positive(t, id)

	activeID, file, err := svc.Store.ActiveConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, activeID)
	assert.Equal(t, "AlwaysOn", file.Monday.Base.Mode)
}

func TestServiceHandlerRoutes(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer feed.Close()

	svc, err := New(testConfig(t, feed.URL, "", ""))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/service/world")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "hello, world")

	resp, err = http.Get(srv.URL + "/fetch")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/hour")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
