package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tickertape/internal/domain"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

type Config struct {
	App struct {
		Mode     string `toml:"mode"`      // empty -> ask on stdin
		LogLevel string `toml:"log_level"` // debug, info, warn, error
	} `toml:"app"`

	Symbols struct {
		List []string `toml:"list"`
	} `toml:"symbols"`

	Feed struct {
		WsURL          string `toml:"ws_url"`
		StreamSuffix   string `toml:"stream_suffix"`
		MaxRetries     int    `toml:"max_retries"` // 0 = never reconnect, -1 = forever
		RetryInitialMs int    `toml:"retry_initial_ms"`
		RetryMaxMs     int    `toml:"retry_max_ms"`
	} `toml:"feed"`

	Display struct {
		RefreshSec  int      `toml:"refresh_sec"`
		AverageSec  int      `toml:"average_sec"`
		ChartPoints int      `toml:"chart_points"`
		ChartList   []string `toml:"chart_symbols"`
		Color       *bool    `toml:"color"` // unset -> auto (terminal only)
	} `toml:"display"`

	Tape struct {
		Path string `toml:"path"`
	} `toml:"tape"`

	Storage struct {
		SQLite struct {
			Enabled bool   `toml:"enabled"`
			Path    string `toml:"path"`
		} `toml:"sqlite"`

		Postgres struct {
			Enabled bool   `toml:"enabled"`
			DSN     string `toml:"dsn"`
		} `toml:"postgres"`

		Redis struct {
			Enabled      bool   `toml:"enabled"`
			Addr         string `toml:"addr"`
			Password     string `toml:"password"`
			DB           int    `toml:"db"`
			Prefix       string `toml:"prefix"`
			TTLSeconds   int    `toml:"ttl_seconds"`
			TapeStream   string `toml:"tape_stream"`
			TapeChannel  string `toml:"tape_channel"`
			StreamMaxLen int64  `toml:"stream_max_len"`
		} `toml:"redis"`
	} `toml:"storage"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	_ = validate(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.App.LogLevel) == "" {
		cfg.App.LogLevel = "info"
	}
	if len(cfg.Symbols.List) == 0 {
		cfg.Symbols.List = []string{"BTCUSDT", "ETHUSDT"}
	}
	if strings.TrimSpace(cfg.Feed.WsURL) == "" {
		cfg.Feed.WsURL = "wss://fstream.binance.com/ws"
	}
	if strings.TrimSpace(cfg.Feed.StreamSuffix) == "" {
		cfg.Feed.StreamSuffix = "ticker"
	}
	if cfg.Feed.RetryInitialMs <= 0 {
		cfg.Feed.RetryInitialMs = 500
	}
	if cfg.Feed.RetryMaxMs <= 0 {
		cfg.Feed.RetryMaxMs = 10000
	}
	if cfg.Display.RefreshSec <= 0 {
		cfg.Display.RefreshSec = 10
	}
	if cfg.Display.AverageSec <= 0 {
		cfg.Display.AverageSec = 60
	}
	if cfg.Display.ChartPoints <= 0 {
		cfg.Display.ChartPoints = 30
	}
	if strings.TrimSpace(cfg.Tape.Path) == "" {
		cfg.Tape.Path = "tape.txt"
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = "data/tickertape.db"
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "tickertape"
	}
	if cfg.Storage.Redis.StreamMaxLen <= 0 {
		cfg.Storage.Redis.StreamMaxLen = 10000
	}
}

func validate(cfg *Config) error {
	cfg.Symbols.List = domain.NormalizeSymbols(cfg.Symbols.List)
	if len(cfg.Symbols.List) == 0 {
		return errors.New("symbols.list is empty")
	}

	cfg.Display.ChartList = domain.NormalizeSymbols(cfg.Display.ChartList)
	for _, s := range cfg.Display.ChartList {
		if !contains(cfg.Symbols.List, s) {
			return fmt.Errorf("display.chart_symbols: %s is not in symbols.list", s)
		}
	}

	cfg.App.Mode = strings.ToLower(strings.TrimSpace(cfg.App.Mode))

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("app.log_level: %w", err)
	}
	if cfg.Feed.RetryMaxMs < cfg.Feed.RetryInitialMs {
		return errors.New("feed.retry_max_ms below feed.retry_initial_ms")
	}

	if cfg.Storage.Postgres.Enabled && strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
		return errors.New("storage.postgres.dsn empty but enabled")
	}
	if cfg.Storage.SQLite.Enabled && strings.TrimSpace(cfg.Storage.SQLite.Path) == "" {
		return errors.New("storage.sqlite.path empty but enabled")
	}
	return nil
}

func (c *Config) Refresh() time.Duration {
	return time.Duration(c.Display.RefreshSec) * time.Second
}

func (c *Config) AverageWindow() time.Duration {
	return time.Duration(c.Display.AverageSec) * time.Second
}

func (c *Config) RetryInitial() time.Duration {
	return time.Duration(c.Feed.RetryInitialMs) * time.Millisecond
}

func (c *Config) RetryMax() time.Duration {
	return time.Duration(c.Feed.RetryMaxMs) * time.Millisecond
}

func (c *Config) StorageEnabled() bool {
	return c.Storage.SQLite.Enabled || c.Storage.Postgres.Enabled || c.Storage.Redis.Enabled
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
