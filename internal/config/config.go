package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbol string `yaml:"symbol"`
	Report struct {
		Root     string `yaml:"root"`
		LinkBase string `yaml:"link_base"`
	} `yaml:"report"`
	Alpaca struct {
		APIKey     string `yaml:"api_key"`
		APISecret  string `yaml:"api_secret"`
		DataURL    string `yaml:"data_url"`
		TradingURL string `yaml:"trading_url"`
		Feed       string `yaml:"feed"`
		TimeoutSec int    `yaml:"timeout_seconds"`
	} `yaml:"alpaca"`
	Database struct {
		PriceIndex string `yaml:"price_index"`
		ThrottleMS int    `yaml:"throttle_ms"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PRICE_INDEX_PATH"); v != "" {
		cfg.Database.PriceIndex = v
	}
	if v := os.Getenv("REPORT_ROOT"); v != "" {
		cfg.Report.Root = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = "BTC/USD"
	}
	if cfg.Report.Root == "" {
		cfg.Report.Root = "data/reports"
	}
	if cfg.Alpaca.DataURL == "" {
		cfg.Alpaca.DataURL = "https://data.alpaca.markets"
	}
	if cfg.Alpaca.TradingURL == "" {
		cfg.Alpaca.TradingURL = "https://api.alpaca.markets"
	}
	if cfg.Alpaca.Feed == "" {
		cfg.Alpaca.Feed = "us"
	}
	if cfg.Alpaca.TimeoutSec == 0 {
		cfg.Alpaca.TimeoutSec = 60
	}
	if cfg.Database.PriceIndex == "" {
		cfg.Database.PriceIndex = "data/price-index.db"
	}
	if cfg.Database.ThrottleMS == 0 {
		cfg.Database.ThrottleMS = 500
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Alpaca.APIKey == "" {
		return fmt.Errorf("alpaca.api_key is required")
	}
	if c.Alpaca.APISecret == "" {
		return fmt.Errorf("alpaca.api_secret is required")
	}
	if c.Database.PriceIndex == "" {
		return fmt.Errorf("database.price_index is required")
	}
	if c.Report.Root == "" {
		return fmt.Errorf("report.root is required")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	return nil
}

// FetchTimeout returns the bounded timeout applied to each upstream fetch.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Alpaca.TimeoutSec) * time.Second
}

// Throttle returns the delay applied between consecutive price-index inserts.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.Database.ThrottleMS) * time.Millisecond
}
