package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spotswitch/spotswitch/core/clock"
	"github.com/spotswitch/spotswitch/infra/logger"
	"github.com/spotswitch/spotswitch/pkg/export"
)

var (
	planDay    string
	planFormat string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the cached day plan",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planDay, "day", "", "day to print (2006-01-02, market zone), defaults to today")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	moment := time.Now()
	if planDay != "" {
		moment, err = time.ParseInLocation("2006-01-02", planDay, clock.Market())
		if err != nil {
			return fmt.Errorf("parse --day: %w", err)
		}
	}
	units, err := svc.DayPlan(ctx, moment)
	if err != nil {
		return err
	}

	switch planFormat {
	case "json":
		return export.WriteJSON(os.Stdout, units)
	case "csv":
		return export.WriteCSV(os.Stdout, units)
	default:
		return fmt.Errorf("unknown format %q", planFormat)
	}
}
