package port

import (
	"context"

	"tickertape/internal/domain"
)

// Repository archives sampled prices. All writes are best-effort.
type Repository interface {
	// UpsertLatestPrice keeps one row per symbol with its most recent sampled price.
	UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error

	// InsertSample appends one tape sample (all symbols, including the ones without data).
	InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error

	Close() error
}

// TapeWriter appends rendered tape lines somewhere durable-ish.
type TapeWriter interface {
	Append(line string) error
}
