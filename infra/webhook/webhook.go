// Package webhook drives the load switch through per-state HTTP hooks.
package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spotswitch/spotswitch/core/logger"
	"github.com/spotswitch/spotswitch/core/strategy"
)

// SwitchLog records applied actuations.
type SwitchLog interface {
	RecordSwitch(ctx context.Context, state strategy.PowerState) (int64, error)
}

// Actuator applies a power state by calling the webhook registered for it.
// An empty URL for a state makes that state a no-op, which is how a dry-run
// deployment is configured.
type Actuator struct {
	OnURL  string
	OffURL string
	HTTP   *http.Client
	Log    SwitchLog
	Logger logger.Logger
}

func (a *Actuator) httpClient() *http.Client {
	if a.HTTP == nil {
		return &http.Client{Timeout: 10 * time.Second}
	}
	return a.HTTP
}

func (a *Actuator) urlFor(state strategy.PowerState) string {
	if state == strategy.On {
		return a.OnURL
	}
	return a.OffURL
}

// Apply fires the webhook for the given state and records the actuation.
func (a *Actuator) Apply(ctx context.Context, state strategy.PowerState) error {
	url := a.urlFor(state)
	if url == "" {
		a.Logger.Warnf("no webhook configured for state %s, skipping", state)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := a.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook for %s: unexpected status code: %d, body: %s", state, resp.StatusCode, body)
	}

	if a.Log != nil {
		if _, err := a.Log.RecordSwitch(ctx, state); err != nil {
			// The switch went through; a failed log entry must not be
			// reported as a failed actuation.
			a.Logger.Errorf("record switch %s: %v", state, err)
		}
	}
	a.Logger.Infof("applied state %s via webhook", state)
	return nil
}
