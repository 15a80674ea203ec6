package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS latest_prices (
  symbol TEXT PRIMARY KEY,
  price DOUBLE PRECISION NOT NULL,
  ts_ms BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
  id BIGSERIAL PRIMARY KEY,
  ts_ms BIGINT NOT NULL,
  symbol TEXT NOT NULL,
  price DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_samples_ts ON samples(ts_ms);
`)
	return err
}

func (r *Repo) UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO latest_prices(symbol, price, ts_ms) VALUES($1, $2, $3)
		ON CONFLICT(symbol) DO UPDATE SET price=EXCLUDED.price, ts_ms=EXCLUDED.ts_ms
	`, symbol, price, ts)
	return err
}

func (r *Repo) InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range quotes {
		price := sql.NullFloat64{Float64: q.Price, Valid: q.OK}
		if _, err := tx.ExecContext(ctx, `INSERT INTO samples(ts_ms, symbol, price) VALUES($1, $2, $3)`, ts, q.Symbol, price); err != nil {
			return fmt.Errorf("insert sample %s: %w", q.Symbol, err)
		}
	}
	return tx.Commit()
}

var _ port.Repository = (*Repo)(nil)
