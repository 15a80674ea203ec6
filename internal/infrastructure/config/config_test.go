package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Symbols.List) != 2 || cfg.Symbols.List[0] != "BTCUSDT" || cfg.Symbols.List[1] != "ETHUSDT" {
		t.Errorf("unexpected default symbols: %v", cfg.Symbols.List)
	}
	if cfg.Feed.WsURL != "wss://fstream.binance.com/ws" || cfg.Feed.StreamSuffix != "ticker" {
		t.Errorf("unexpected feed defaults: %+v", cfg.Feed)
	}
	if cfg.Feed.MaxRetries != 0 {
		t.Errorf("reconnect must be off by default, got %d", cfg.Feed.MaxRetries)
	}
	if cfg.Refresh() != 10*time.Second || cfg.AverageWindow() != time.Minute {
		t.Errorf("unexpected display defaults: %+v", cfg.Display)
	}
	if cfg.Tape.Path != "tape.txt" {
		t.Errorf("unexpected tape path %q", cfg.Tape.Path)
	}
	if cfg.StorageEnabled() {
		t.Error("storage should be disabled by default")
	}
}

func TestLoadNormalizesSymbols(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[app]
mode = " Tape "

[symbols]
list = ["btcusdt", " ETHUSDT", "BTCUSDT", ""]

[display]
chart_symbols = ["ethusdt"]
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Symbols.List) != 2 || cfg.Symbols.List[0] != "BTCUSDT" {
		t.Errorf("unexpected symbols: %v", cfg.Symbols.List)
	}
	if cfg.Display.ChartList[0] != "ETHUSDT" {
		t.Errorf("unexpected chart symbols: %v", cfg.Display.ChartList)
	}
	if cfg.App.Mode != "tape" {
		t.Errorf("unexpected mode %q", cfg.App.Mode)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"unknown chart symbol": `
[display]
chart_symbols = ["DOGEUSDT"]
`,
		"bad log level": `
[app]
log_level = "loud"
`,
		"postgres without dsn": `
[storage.postgres]
enabled = true
dsn = ""
`,
		"retry window": `
[feed]
retry_initial_ms = 5000
retry_max_ms = 100
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRepoConfig(t *testing.T) {
	cfg, err := Load("../../../configs/config.toml")
	if err != nil {
		t.Fatalf("shipped config does not load: %v", err)
	}
	if cfg.Storage.Redis.Prefix != "tickertape" {
		t.Errorf("unexpected redis prefix %q", cfg.Storage.Redis.Prefix)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.Symbols.List) != 2 || cfg.App.LogLevel != "info" {
		t.Errorf("unexpected default config: %+v", cfg)
	}
}
