// Package plan exposes the cached day plan over HTTP.
package plan

import (
	"context"
	"net/http"
	"time"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/strategy"
	"github.com/spotswitch/spotswitch/pkg/export"
)

// Source yields the planned hours for the day containing a moment.
type Source interface {
	DayPlan(ctx context.Context, moment time.Time) ([]strategy.PriceChangeUnit, error)
}

// NewHandler returns an HTTP handler serving GET /api/plan. Requests must
// include an Authorization header with "Bearer <token>" when token is
// non-empty. The day query parameter selects the day (2006-01-02, market
// zone); it defaults to today. format=csv switches the output from JSON.
func NewHandler(source Source, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		moment := time.Now()
		if s := r.URL.Query().Get("day"); s != "" {
			t, err := time.ParseInLocation("2006-01-02", s, clock.Market())
			if err != nil {
				http.Error(w, "bad day parameter", http.StatusBadRequest)
				return
			}
			moment = t
		}
		units, err := source.DayPlan(r.Context(), moment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		switch r.URL.Query().Get("format") {
		case "", "json":
			w.Header().Set("Content-Type", "application/json")
			if err := export.WriteJSON(w, units); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			if err := export.WriteCSV(w, units); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "unknown format", http.StatusBadRequest)
		}
	})
}
