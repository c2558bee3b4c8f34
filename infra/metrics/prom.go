// Package metrics exposes planner telemetry as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spotswitch/spotswitch/core/strategy"
)

// PromSink records planner events in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	cacheHit prometheus.Counter
	plans    prometheus.Counter
	switches *prometheus.CounterVec
}

// NewPromSink registers planner metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Total number of planning runs started",
	})
	cacheHit := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_cache_hits_total",
		Help: "Planning runs answered from the decision cache",
	})
	plans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_plans_computed_total",
		Help: "Full day plans computed from market prices",
	})
	switches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_switches_applied_total",
		Help: "Actuations applied to the load switch",
	}, []string{"state"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cacheHit); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cacheHit = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(switches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			switches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, cacheHit: cacheHit, plans: plans, switches: switches}, nil
}

func (s *PromSink) RunStarted()   { s.runs.Inc() }
func (s *PromSink) CacheHit()     { s.cacheHit.Inc() }
func (s *PromSink) PlanComputed() { s.plans.Inc() }

func (s *PromSink) SwitchApplied(state strategy.PowerState) {
	s.switches.WithLabelValues(state.String()).Inc()
}
