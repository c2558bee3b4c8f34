package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotswitch/spotswitch/infra/logger"
)

var (
	hourForce bool
	hourEnact bool
)

var hourCmd = &cobra.Command{
	Use:   "hour",
	Short: "Plan today and tomorrow, optionally enacting the current hour",
	RunE:  runHour,
}

func init() {
	hourCmd.Flags().BoolVar(&hourForce, "force", false, "recompute even when a cached plan exists")
	hourCmd.Flags().BoolVar(&hourEnact, "enact", false, "apply the current hour's decision to the switch")
	rootCmd.AddCommand(hourCmd)
}

func runHour(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Hour(ctx, time.Now(), hourForce, hourEnact)
}
