package service

import (
	"tickertape/internal/application/port"
)

// PriceService applies decoded ticks to the shared store.
type PriceService struct {
	store port.PriceWriter
}

func NewPriceService(store port.PriceWriter) *PriceService {
	return &PriceService{store: store}
}

// Apply writes the tick if its symbol is tracked; untracked symbols are ignored.
func (s *PriceService) Apply(t port.Tick) bool {
	return s.store.Set(t.Symbol, t.Price)
}
