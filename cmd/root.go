// Package cmd defines the command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spotswitch/spotswitch/app"
	"github.com/spotswitch/spotswitch/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "spotswitch",
	Short: "Day-ahead price based load switch planner",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.toml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// newService loads the configuration and builds the service.
func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}
