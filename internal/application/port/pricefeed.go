package port

import "tickertape/internal/domain"

// Tick is one decoded price update.
type Tick struct {
	Symbol string  // "BTCUSDT"
	Price  float64 // last price
	Ts     int64   // unix ms, receive time
}

// PriceReader is the only capability presentation modes get.
type PriceReader interface {
	Get(symbol string) (float64, bool)
	Symbols() []string
	Snapshot() []domain.Quote
}

// PriceWriter is what feed listeners write into.
type PriceWriter interface {
	Set(symbol string, price float64) bool
}
