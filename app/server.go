package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/spotswitch/spotswitch/api/plan"
	"github.com/spotswitch/spotswitch/infra/metrics"
)

// Serve runs the service continuously: an hourly cron schedule fetches the
// feed and executes the planning pass, and a small HTTP server offers manual
// triggers and a price chart. Blocks until the context is canceled.
func (s *Service) Serve(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.cfg.Scheduler.CronSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if err := s.Fetch(runCtx); err != nil {
			s.log.Errorf("scheduled fetch: %v", err)
		}
		if err := s.Hour(runCtx, time.Now(), false, true); err != nil {
			s.log.Errorf("scheduled hour run: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", s.cfg.Scheduler.CronSpec, err)
	}
	c.Start()
	defer c.Stop()

	if s.cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Address, s.log); err != nil {
				s.log.Errorf("metrics server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("serving on %s, schedule %q", s.cfg.Server.Address, s.cfg.Scheduler.CronSpec)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/service/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/service/")
		fmt.Fprintf(w, "spotswitch says hello, %s!\n", name)
	})
	mux.HandleFunc("/hour", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Hour(r.Context(), time.Now(), true, true); err != nil {
			s.log.Errorf("triggered hour run: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, "hour executed")
	})
	mux.HandleFunc("/fetch", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Fetch(r.Context()); err != nil {
			s.log.Errorf("triggered fetch: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, "fetch executed")
	})
	mux.Handle("/api/plan", plan.NewHandler(s, s.cfg.Server.APIToken))
	mux.HandleFunc("/chart", func(w http.ResponseWriter, r *http.Request) {
		html, err := s.ChartHTML(r.Context(), time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	})
	return mux
}
