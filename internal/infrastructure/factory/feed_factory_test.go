package factory

import (
	"testing"

	"tickertape/internal/application/port"
	"tickertape/internal/infrastructure/config"
	"tickertape/internal/infrastructure/exchange/binance"
)

func TestNewListenerFactory(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.StreamSuffix = "miniTicker"
	f := NewListenerFactory(cfg)

	a, ok := f("BTCUSDT", func(port.Tick) {}).(*binance.Listener)
	if !ok {
		t.Fatal("expected a binance listener")
	}
	b := f("ETHUSDT", func(port.Tick) {}).(*binance.Listener)

	if a.Stream() != "btcusdt@miniTicker" || b.Stream() != "ethusdt@miniTicker" {
		t.Errorf("unexpected streams %q %q", a.Stream(), b.Stream())
	}
}
