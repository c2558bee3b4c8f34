// Package planner wires the planning pipeline end to end: cached-decision
// lookup, price fetch, base plan, price mask, overrides, cache write-back and
// actuation for the current hour.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/dayplan"
	"github.com/spotswitch/spotswitch/core/logger"
	"github.com/spotswitch/spotswitch/core/market"
	"github.com/spotswitch/spotswitch/core/strategy"
)

// PriceSource fetches the stored price cells for the calendar day containing
// the given instant. No data is not an error: the result may be empty or
// partial.
type PriceSource interface {
	PriceCells(ctx context.Context, day time.Time) (market.DaySlice, error)
}

// DecisionCache persists finalized decisions per configuration version.
// UpsertDecision must be safe to call repeatedly with identical inputs.
type DecisionCache interface {
	CachedDay(ctx context.Context, day time.Time, configID int64) ([]strategy.PriceChangeUnit, error)
	UpsertDecision(ctx context.Context, moment time.Time, state strategy.PowerState, configID int64) error
}

// ConfigSource resolves the active day-plan configuration and its version id.
type ConfigSource interface {
	ActiveConfig(ctx context.Context) (int64, *dayplan.File, error)
}

// Actuator performs the physical switch.
type Actuator interface {
	Apply(ctx context.Context, state strategy.PowerState) error
}

// Metrics receives planner telemetry. All methods are fire-and-forget.
type Metrics interface {
	RunStarted()
	CacheHit()
	PlanComputed()
	SwitchApplied(state strategy.PowerState)
}

// NopMetrics discards all telemetry.
type NopMetrics struct{}

func (NopMetrics) RunStarted()                       {}
func (NopMetrics) CacheHit()                         {}
func (NopMetrics) PlanComputed()                     {}
func (NopMetrics) SwitchApplied(strategy.PowerState) {}

// Planner orchestrates one planning run. It is single-threaded and pure
// apart from its two side-effecting boundaries, prices and cache; process
// level mutual exclusion is the caller's concern.
type Planner struct {
	Prices   PriceSource
	Cache    DecisionCache
	Configs  ConfigSource
	Actuator Actuator
	Log      logger.Logger
	Metrics  Metrics
}

func (p *Planner) metrics() Metrics {
	if p.Metrics == nil {
		return NopMetrics{}
	}
	return p.Metrics
}

// StateAt returns the cached state whose planning-zone hour bucket contains
// t, if any.
func StateAt(units []strategy.PriceChangeUnit, t time.Time) (strategy.PowerState, bool) {
	start, end := clock.HourRange(t, clock.Market())
	for _, u := range units {
		if clock.Contains(start, end, u.Moment) {
			return u.State, true
		}
	}
	return strategy.Off, false
}

// PlanDay decides the full calendar day containing moment. When the cache
// already holds a decision for moment's exact hour and force is false the
// cached day is returned untouched; otherwise the pipeline runs and every
// resulting entry is written back to the cache under the active
// configuration id.
func (p *Planner) PlanDay(ctx context.Context, moment time.Time, force bool) ([]strategy.PriceChangeUnit, error) {
	configID, cfg, err := p.Configs.ActiveConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("active config: %w", err)
	}

	cached, err := p.Cache.CachedDay(ctx, moment, configID)
	if err != nil {
		return nil, fmt.Errorf("cached day: %w", err)
	}
	if state, ok := StateAt(cached, moment); ok && !force {
		p.Log.Debugf("hour already decided: %s at %s", state, moment.Format(time.RFC3339))
		p.metrics().CacheHit()
		return cached, nil
	}

	plan, err := p.computeDay(ctx, moment, cfg)
	if err != nil {
		return nil, err
	}

	for _, unit := range plan {
		if err := p.Cache.UpsertDecision(ctx, unit.Moment, unit.State, configID); err != nil {
			return nil, fmt.Errorf("cache decision at %s: %w", unit.Moment.Format(time.RFC3339), err)
		}
	}
	p.metrics().PlanComputed()
	return plan, nil
}

func (p *Planner) computeDay(ctx context.Context, moment time.Time, cfg *dayplan.File) ([]strategy.PriceChangeUnit, error) {
	cells, err := p.Prices.PriceCells(ctx, moment)
	if err != nil {
		return nil, fmt.Errorf("price cells: %w", err)
	}

	day := cfg.DayFor(moment.In(clock.Market()).Weekday())
	base, err := day.BaseStrategy()
	if err != nil {
		return nil, err
	}
	mask, err := day.MaskStrategy()
	if err != nil {
		return nil, err
	}

	plan := strategy.PlanDayFull(base, cells, moment)
	plan = mask.PlanDayMasked(plan)
	dayplan.ApplyOverrides(plan, cfg, clock.Local())
	return plan, nil
}

// EnactNow applies the cached state for the hour containing now. A missing
// cached state applies nothing; an actuator failure surfaces to the caller
// but the cached plan is already committed and unaffected.
func (p *Planner) EnactNow(ctx context.Context, now time.Time) error {
	configID, _, err := p.Configs.ActiveConfig(ctx)
	if err != nil {
		return fmt.Errorf("active config: %w", err)
	}
	cached, err := p.Cache.CachedDay(ctx, now, configID)
	if err != nil {
		return fmt.Errorf("cached day: %w", err)
	}
	state, ok := StateAt(cached, now)
	if !ok {
		p.Log.Warnf("no cached decision for %s, leaving switch untouched", now.Format(time.RFC3339))
		return nil
	}
	if err := p.Actuator.Apply(ctx, state); err != nil {
		return fmt.Errorf("apply %s: %w", state, err)
	}
	p.metrics().SwitchApplied(state)
	return nil
}

// Run is the hourly entry point: plan today and tomorrow, then enact the
// current hour's decision.
func (p *Planner) Run(ctx context.Context, now time.Time, force bool) error {
	runID := uuid.NewString()
	p.metrics().RunStarted()
	p.Log.Infof("planning run %s at %s force=%v", runID, now.Format(time.RFC3339), force)

	if _, err := p.PlanDay(ctx, now, force); err != nil {
		return fmt.Errorf("run %s plan today: %w", runID, err)
	}
	tomorrow := now.AddDate(0, 0, 1)
	if _, err := p.PlanDay(ctx, tomorrow, force); err != nil {
		return fmt.Errorf("run %s plan tomorrow: %w", runID, err)
	}
	if err := p.EnactNow(ctx, now); err != nil {
		return fmt.Errorf("run %s enact: %w", runID, err)
	}
	return nil
}
