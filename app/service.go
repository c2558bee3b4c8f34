// Package app wires the configuration, storage, market feed, planner and
// actuator into a runnable service.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spotswitch/spotswitch/config"
	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/core/planner"
	"github.com/spotswitch/spotswitch/core/strategy"
	"github.com/spotswitch/spotswitch/infra/logger"
	"github.com/spotswitch/spotswitch/infra/metrics"
	"github.com/spotswitch/spotswitch/infra/nordpool"
	"github.com/spotswitch/spotswitch/infra/proclock"
	"github.com/spotswitch/spotswitch/infra/store"
	"github.com/spotswitch/spotswitch/infra/webhook"
)

// Service orchestrates planning runs against the shared database.
type Service struct {
	Store   *store.Store
	Planner *planner.Planner
	Feed    *nordpool.Client

	cfg *config.Config
	log logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := clock.SetZones(cfg.Timezones.Market, cfg.Timezones.Local); err != nil {
		return nil, fmt.Errorf("timezones: %w", err)
	}
	if err := logger.SetGlobalLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logg := logger.New("service")

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	actuator := &webhook.Actuator{
		OnURL:  cfg.Webhooks.OnURL,
		OffURL: cfg.Webhooks.OffURL,
		Log:    st,
		Logger: logger.New("webhook"),
	}

	var sink planner.Metrics = planner.NopMetrics{}
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPromSink(nil)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = prom
	}

	pl := &planner.Planner{
		Prices:   st,
		Cache:    st,
		Configs:  st,
		Actuator: actuator,
		Log:      logger.New("planner"),
		Metrics:  sink,
	}
	feed := &nordpool.Client{URL: cfg.Market.FeedURL}

	return &Service{Store: st, Planner: pl, Feed: feed, cfg: cfg, log: logg}, nil
}

// withLock runs fn while holding the process lock. Planning and fetching
// share one database; overlapping runs are refused, not queued.
func (s *Service) withLock(fn func() error) error {
	lock, err := proclock.Acquire(s.cfg.Scheduler.LockFile)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			s.log.Errorf("release lock: %v", rerr)
		}
	}()
	return fn()
}

// Fetch pulls the day-ahead feed and stores every decoded price cell.
// Already known moments are left untouched.
func (s *Service) Fetch(ctx context.Context) error {
	return s.withLock(func() error {
		matrix, err := s.Feed.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch feed: %w", err)
		}
		if err := nordpool.Persist(ctx, s.Store, matrix); err != nil {
			return err
		}
		cells := 0
		for _, col := range matrix {
			cells += len(col.Cells)
		}
		s.log.Infof("stored %d price cells across %d days", cells, len(matrix))
		return nil
	})
}

// Hour runs the hourly planning pass for now: plan today and tomorrow, then
// enact the current hour's cached decision unless enact is false.
func (s *Service) Hour(ctx context.Context, now time.Time, force, enact bool) error {
	return s.withLock(func() error {
		if enact {
			return s.Planner.Run(ctx, now, force)
		}
		if _, err := s.Planner.PlanDay(ctx, now, force); err != nil {
			return fmt.Errorf("plan today: %w", err)
		}
		if _, err := s.Planner.PlanDay(ctx, now.AddDate(0, 0, 1), force); err != nil {
			return fmt.Errorf("plan tomorrow: %w", err)
		}
		return nil
	})
}

// ReinsertConfig loads a day configuration file into the database as the
// newest revision. The file is validated before it is stored.
func (s *Service) ReinsertConfig(ctx context.Context, path string) (int64, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read config %s: %w", path, err)
	}
	id, err := s.Store.InsertConfigTOML(ctx, string(text))
	if err != nil {
		return 0, err
	}
	s.log.Infof("inserted day configuration revision %d from %s", id, path)
	return id, nil
}

// DayPlan returns the cached plan for the day containing moment under the
// active configuration. Days never planned come back empty.
func (s *Service) DayPlan(ctx context.Context, moment time.Time) ([]strategy.PriceChangeUnit, error) {
	configID, _, err := s.Store.ActiveConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("active config: %w", err)
	}
	return s.Store.CachedDay(ctx, moment, configID)
}

// ChartHTML renders the stored prices for the day containing moment.
func (s *Service) ChartHTML(ctx context.Context, moment time.Time) (string, error) {
	cells, err := s.Store.PriceCells(ctx, moment)
	if err != nil {
		return "", fmt.Errorf("load prices: %w", err)
	}
	col := nordpool.DateColumn{Date: clock.DayStart(moment, clock.Market()), Cells: cells}
	return nordpool.PriceChartHTML(col)
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Store.Close() }
