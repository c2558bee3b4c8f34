// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Database  DatabaseConfig  `json:"database"`
	Market    MarketConfig    `json:"market"`
	Webhooks  WebhookConfig   `json:"webhooks"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Server    ServerConfig    `json:"server"`
	Metrics   MetricsConfig   `json:"metrics"`
	Logging   LoggingConfig   `json:"logging"`
	Timezones TimezoneConfig  `json:"timezones"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Database.SetDefaults()
	cfg.Scheduler.SetDefaults()
	cfg.Server.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Timezones.SetDefaults()
	if err := cfg.Market.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `json:"path"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "spotswitch.db"
	}
}

// MarketConfig points at the day-ahead price feed.
type MarketConfig struct {
	FeedURL string `json:"feed_url"`
}

func (c MarketConfig) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("market.feed_url is required")
	}
	return nil
}

// WebhookConfig holds the per-state actuation endpoints. Leaving both
// empty runs the planner without driving a switch.
type WebhookConfig struct {
	OnURL  string `json:"on_url"`
	OffURL string `json:"off_url"`
}

// SchedulerConfig controls the hourly planning trigger.
type SchedulerConfig struct {
	// CronSpec is a standard five-field cron expression.
	CronSpec string `json:"cron_spec"`
	// LockFile guards against overlapping runs across processes.
	LockFile string `json:"lock_file"`
}

func (c *SchedulerConfig) SetDefaults() {
	if c.CronSpec == "" {
		c.CronSpec = "5 * * * *"
	}
	if c.LockFile == "" {
		c.LockFile = "/tmp/spotswitch.lock"
	}
}

func (c SchedulerConfig) Validate() error {
	if len(strings.Fields(c.CronSpec)) != 5 && !strings.HasPrefix(c.CronSpec, "@") {
		return fmt.Errorf("scheduler.cron_spec %q is not a five-field cron expression", c.CronSpec)
	}
	return nil
}

// ServerConfig controls the HTTP trigger server used in serve mode. An
// empty APIToken leaves the plan API open.
type ServerConfig struct {
	Address  string `json:"address"`
	APIToken string `json:"api_token"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":2112"
	}
}

// TimezoneConfig names the market and local IANA zones. The market zone
// keys price data, the local zone drives tariff and override rules.
type TimezoneConfig struct {
	Market string `json:"market"`
	Local  string `json:"local"`
}

func (c *TimezoneConfig) SetDefaults() {
	if c.Market == "" {
		c.Market = "Europe/Berlin"
	}
	if c.Local == "" {
		c.Local = "Europe/Tallinn"
	}
}
