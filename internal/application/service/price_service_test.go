package service

import (
	"testing"

	"tickertape/internal/application/port"
)

type mockWriter struct {
	tracked map[string]bool
	prices  map[string]float64
}

func (m *mockWriter) Set(symbol string, price float64) bool {
	if !m.tracked[symbol] {
		return false
	}
	m.prices[symbol] = price
	return true
}

func TestPriceServiceApply(t *testing.T) {
	mock := &mockWriter{
		tracked: map[string]bool{"BTCUSDT": true},
		prices:  make(map[string]float64),
	}
	svc := NewPriceService(mock)

	if !svc.Apply(port.Tick{Symbol: "BTCUSDT", Price: 45000.0}) {
		t.Fatal("Apply on tracked symbol returned false")
	}
	if svc.Apply(port.Tick{Symbol: "DOGEUSDT", Price: 0.15}) {
		t.Error("Apply on untracked symbol returned true")
	}

	if price, exists := mock.prices["BTCUSDT"]; !exists || price != 45000.0 {
		t.Errorf("expected price 45000.0, got %v", price)
	}
	if _, exists := mock.prices["DOGEUSDT"]; exists {
		t.Error("untracked symbol written")
	}
}
