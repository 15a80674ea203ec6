package display

import (
	"context"

	"tickertape/internal/domain"
)

type memRepo struct {
	samples [][]domain.Quote
	latest  map[string]float64
}

func (m *memRepo) UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error {
	if m.latest == nil {
		m.latest = make(map[string]float64)
	}
	m.latest[symbol] = price
	return nil
}

func (m *memRepo) InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error {
	m.samples = append(m.samples, quotes)
	return nil
}

func (m *memRepo) Close() error { return nil }
