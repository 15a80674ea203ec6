package composite

import (
	"context"
	"errors"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"
)

type Repo struct {
	repos []port.Repository
}

func New(repos ...port.Repository) *Repo {
	// nil repos are allowed; filter in constructor for safety
	out := make([]port.Repository, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

func (r *Repo) Len() int { return len(r.repos) }

func (r *Repo) UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.UpsertLatestPrice(ctx, symbol, price, ts); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.InsertSample(ctx, ts, quotes); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) Close() error {
	var errs []error
	for _, repo := range r.repos {
		errs = append(errs, repo.Close())
	}
	return errors.Join(errs...)
}

var _ port.Repository = (*Repo)(nil)
