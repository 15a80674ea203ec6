package domain

import "sync"

type slot struct {
	price float64
	has   bool
}

// PriceStore holds the latest price per tracked symbol.
// Listeners write, presentation modes read; every access goes through mu so a
// reader never sees a partially written slot.
type PriceStore struct {
	mu    sync.RWMutex
	order []string
	slots map[string]*slot
}

// NewPriceStore creates a store with every symbol mapped to "no data yet".
func NewPriceStore(symbols []string) *PriceStore {
	order := NormalizeSymbols(symbols)
	slots := make(map[string]*slot, len(order))
	for _, s := range order {
		slots[s] = &slot{}
	}
	return &PriceStore{order: order, slots: slots}
}

// Set overwrites the price of a tracked symbol.
// Returns false and leaves the store untouched for untracked symbols.
func (s *PriceStore) Set(symbol string, price float64) bool {
	symbol = NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.slots[symbol]
	if sl == nil {
		return false
	}
	sl.price = price
	sl.has = true
	return true
}

// Get returns the latest price and false if nothing has been received yet
// (or the symbol is not tracked).
func (s *PriceStore) Get(symbol string) (float64, bool) {
	symbol = NormalizeSymbol(symbol)

	s.mu.RLock()
	defer s.mu.RUnlock()

	sl := s.slots[symbol]
	if sl == nil || !sl.has {
		return 0, false
	}
	return sl.price, true
}

// Symbols returns the ordered symbol list.
func (s *PriceStore) Symbols() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Snapshot returns all quotes in symbol order, read under one lock.
func (s *PriceStore) Snapshot() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Quote, 0, len(s.order))
	for _, sym := range s.order {
		sl := s.slots[sym]
		out = append(out, Quote{Symbol: sym, Price: sl.price, OK: sl.has})
	}
	return out
}
