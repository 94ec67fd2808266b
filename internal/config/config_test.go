package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Symbol != "BTC/USD" {
		t.Errorf("symbol default: got %q", cfg.Symbol)
	}
	if cfg.Alpaca.TimeoutSec != 60 {
		t.Errorf("timeout default: got %d", cfg.Alpaca.TimeoutSec)
	}
	if cfg.Throttle() != 500*time.Millisecond {
		t.Errorf("throttle default: got %v", cfg.Throttle())
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
symbol: ETH/USD
report:
  root: /srv/reports
database:
  price_index: /srv/index.db
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("PRICE_INDEX_PATH", "/env/index.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Symbol != "ETH/USD" {
		t.Errorf("symbol from file: got %q", cfg.Symbol)
	}
	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("api key from env: got %q", cfg.Alpaca.APIKey)
	}
	if cfg.Database.PriceIndex != "/env/index.db" {
		t.Errorf("env must override file: got %q", cfg.Database.PriceIndex)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without API credentials")
	}

	cfg.Alpaca.APIKey = "k"
	cfg.Alpaca.APISecret = "s"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bot token without chat id")
	}
}
