package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		Symbol       string `yaml:"symbol"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Warehouse struct {
		SQLitePath      string `yaml:"sqlite_path"`
		PostgresDSN     string `yaml:"postgres_dsn"`
		IncludeRawTable bool   `yaml:"include_raw_table"`
	} `yaml:"warehouse"`
	Analysis struct {
		// Histogram bin edges shared by all categories. Empty means the
		// built-in default (50-day-wide bins up to 1000+).
		BinEdges []int `yaml:"bin_edges"`
	} `yaml:"analysis"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file next to the binary is honored first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // no .env file is fine

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
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.LookbackDays = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Warehouse.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Warehouse.PostgresDSN = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "BTC-USD"
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 3650
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 0 * * *"
	}
	if cfg.Warehouse.SQLitePath == "" && cfg.Warehouse.PostgresDSN == "" {
		cfg.Warehouse.SQLitePath = "data/ema_analyzer.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.LookbackDays <= 0 {
		return fmt.Errorf("data_source.lookback_days must be positive")
	}
	for i := 1; i < len(c.Analysis.BinEdges); i++ {
		if c.Analysis.BinEdges[i] <= c.Analysis.BinEdges[i-1] {
			return fmt.Errorf("analysis.bin_edges must be strictly ascending")
		}
	}
	if len(c.Analysis.BinEdges) > 0 && c.Analysis.BinEdges[0] != 0 {
		return fmt.Errorf("analysis.bin_edges must start at 0")
	}
	return nil
}
