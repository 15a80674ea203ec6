package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"tickertape/internal/application/service"
	"tickertape/internal/application/usecase/display"
	"tickertape/internal/application/usecase/feed"
	"tickertape/internal/domain"
	"tickertape/internal/infrastructure/config"
	"tickertape/internal/infrastructure/container"
	"tickertape/internal/infrastructure/factory"
	"tickertape/internal/infrastructure/logger"
	"tickertape/internal/infrastructure/tape"
	"tickertape/internal/interfaces/console"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.Setup("info")

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	modeFlag := flag.String("mode", "", "display mode (counter, tape, dual, average, chart or 1-5)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("config", *configPath).Msg("config not found, using defaults")
		cfg = config.Default()
	case err != nil:
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := domain.NewPriceStore(cfg.Symbols.List)

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage initialization failed")
	}
	defer c.Close()

	// listeners start before the menu so prices are arriving while the user picks
	feeds := feed.NewService(feed.ServiceDeps{
		Store:       store,
		Symbols:     store.Symbols(),
		NewListener: factory.NewListenerFactory(cfg),
	})
	go func() {
		if err := feeds.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("price feeds down, displayed prices are frozen")
		}
	}()

	log.Info().
		Str("config", *configPath).
		Strs("symbols", store.Symbols()).
		Str("ws_url", cfg.Feed.WsURL).
		Int("max_retries", cfg.Feed.MaxRetries).
		Bool("storage", cfg.StorageEnabled()).
		Msg("tickertape started")

	info, err := chooseMode(*modeFlag, cfg.App.Mode)
	if err != nil {
		log.Fatal().Err(err).Msg("no display mode")
	}

	sink := console.NewSink()
	color := sink.IsTerminal()
	if cfg.Display.Color != nil {
		color = *cfg.Display.Color
	}

	var samples *service.SampleService
	if repo := c.Repository(); repo != nil {
		samples = service.NewSampleService(repo)
	}

	mode, err := display.Build(info.Name, display.BuildDeps{
		Store:         store,
		Sink:          sink,
		Formatter:     display.NewFormatter(color),
		TapeFile:      tape.NewFile(cfg.Tape.Path),
		Samples:       samples,
		Refresh:       cfg.Refresh(),
		AverageWindow: cfg.AverageWindow(),
		ChartPoints:   cfg.Display.ChartPoints,
		ChartSymbols:  cfg.Display.ChartList,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build display mode failed")
	}

	if err := display.Run(ctx, mode); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("display exited")
	}
	log.Warn().Msg("exit")
}

// chooseMode prefers the -mode flag, then app.mode, then asks on stdin.
func chooseMode(flagMode, cfgMode string) (display.ModeInfo, error) {
	for _, m := range []string{flagMode, cfgMode} {
		if m == "" {
			continue
		}
		info, ok := display.Lookup(m)
		if !ok {
			return display.ModeInfo{}, errors.New("unknown display mode: " + m)
		}
		return info, nil
	}
	return console.NewMenu(os.Stdin, os.Stdout).Choose()
}
