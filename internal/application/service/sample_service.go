package service

import (
	"context"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"
)

// SampleService archives tape samples.
type SampleService struct {
	repo port.Repository
}

func NewSampleService(repo port.Repository) *SampleService {
	return &SampleService{repo: repo}
}

// Record stores the sample and refreshes the latest price of every symbol that has one.
// The first error is returned but every write is attempted.
func (s *SampleService) Record(ctx context.Context, ts int64, quotes []domain.Quote) error {
	if s == nil || s.repo == nil {
		return nil
	}
	firstErr := s.repo.InsertSample(ctx, ts, quotes)
	for _, q := range quotes {
		if !q.OK {
			continue
		}
		if err := s.repo.UpsertLatestPrice(ctx, q.Symbol, q.Price, ts); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
