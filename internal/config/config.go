package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Source  string   `yaml:"source"` // "yahoo" or "synthetic"
		Symbols []string `yaml:"symbols"`
		Days    int      `yaml:"days"`
		Seed    int64    `yaml:"seed"` // synthetic source only
	} `yaml:"data_source"`
	Strategy struct {
		SMAShort  int     `yaml:"sma_short"`
		SMALong   int     `yaml:"sma_long"`
		RSIPeriod int     `yaml:"rsi_period"`
		RSIBuy    float64 `yaml:"rsi_buy"`
		RSISell   float64 `yaml:"rsi_sell"`
	} `yaml:"strategy"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Export struct {
		OutputDir string `yaml:"output_dir"`
		ProjectID string `yaml:"project_id"`
		DatasetID string `yaml:"dataset_id"`
	} `yaml:"export"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SCOUT_SOURCE"); v != "" {
		cfg.DataSource.Source = v
	}
	if v := os.Getenv("SCOUT_SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("SCOUT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.Days = n
		}
	}
	if v := os.Getenv("SCOUT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.DataSource.Seed = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Export.OutputDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Source == "" {
		cfg.DataSource.Source = "yahoo"
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN"}
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 90
	}
	if cfg.DataSource.Seed == 0 {
		cfg.DataSource.Seed = 42
	}
	if cfg.Strategy.SMAShort == 0 {
		cfg.Strategy.SMAShort = 20
	}
	if cfg.Strategy.SMALong == 0 {
		cfg.Strategy.SMALong = 50
	}
	if cfg.Strategy.RSIPeriod == 0 {
		cfg.Strategy.RSIPeriod = 14
	}
	if cfg.Strategy.RSIBuy == 0 {
		cfg.Strategy.RSIBuy = 30
	}
	if cfg.Strategy.RSISell == 0 {
		cfg.Strategy.RSISell = 70
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signalscout.db"
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "out"
	}
	if cfg.Export.ProjectID == "" {
		cfg.Export.ProjectID = "demo-project"
	}
	if cfg.Export.DatasetID == "" {
		cfg.Export.DatasetID = "financial_data"
	}

	return cfg, nil
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Source {
	case "yahoo", "synthetic":
	default:
		return fmt.Errorf("data_source.source must be yahoo or synthetic, got %q", c.DataSource.Source)
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols is required")
	}
	if c.DataSource.Days <= 0 {
		return fmt.Errorf("data_source.days must be positive")
	}
	return nil
}

// ClampStrategy forces the strategy windows into the ranges the signal
// engine accepts, adjusting rather than refusing to run. The engine
// itself rejects bad parameters; this is the caller-side convenience.
func (c *Config) ClampStrategy() {
	if c.Strategy.SMAShort < 2 {
		log.Printf("[WARN] sma_short %d below minimum, using 2", c.Strategy.SMAShort)
		c.Strategy.SMAShort = 2
	}
	if c.Strategy.SMALong < c.Strategy.SMAShort+1 {
		log.Printf("[WARN] sma_long %d must exceed sma_short, using %d", c.Strategy.SMALong, c.Strategy.SMAShort+1)
		c.Strategy.SMALong = c.Strategy.SMAShort + 1
	}
	if c.Strategy.RSIPeriod < 2 {
		log.Printf("[WARN] rsi_period %d below minimum, using 2", c.Strategy.RSIPeriod)
		c.Strategy.RSIPeriod = 2
	}
}
