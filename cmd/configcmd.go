package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spotswitch/spotswitch/infra/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage day configuration revisions",
}

var configReinsertCmd = &cobra.Command{
	Use:   "reinsert [file]",
	Short: "Validate a day configuration file and store it as the newest revision",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigReinsert,
}

func init() {
	configCmd.AddCommand(configReinsertCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigReinsert(cmd *cobra.Command, args []string) error {
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

	id, err := svc.ReinsertConfig(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("stored day configuration revision %d\n", id)
	return nil
}
