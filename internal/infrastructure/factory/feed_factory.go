package factory

import (
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/application/usecase/feed"
	"tickertape/internal/infrastructure/config"
	"tickertape/internal/infrastructure/exchange/binance"
)

// NewListenerFactory binds every symbol to its own Binance ticker stream.
// Request ids are assigned in creation order starting at 1.
func NewListenerFactory(cfg *config.Config) feed.ListenerFactory {
	var nextID int64
	retry := binance.RetryConfig{
		MaxRetries:   cfg.Feed.MaxRetries,
		InitialDelay: cfg.RetryInitial(),
		MaxDelay:     cfg.RetryMax(),
	}

	return func(symbol string, handle func(port.Tick)) feed.Listener {
		nextID++
		return binance.NewListener(binance.ListenerConfig{
			WsURL:     cfg.Feed.WsURL,
			Stream:    binance.StreamName(symbol, cfg.Feed.StreamSuffix),
			RequestID: nextID,
			Retry:     retry,
		}, func(t binance.Ticker) {
			handle(port.Tick{Symbol: t.Symbol, Price: t.Price, Ts: time.Now().UnixMilli()})
		})
	}
}
