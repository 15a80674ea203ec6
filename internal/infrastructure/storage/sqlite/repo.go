package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"

	_ "modernc.org/sqlite"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

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
  price REAL NOT NULL,
  ts_ms INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_ms INTEGER NOT NULL,
  symbol TEXT NOT NULL,
  price REAL,
  has_price INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_ts ON samples(ts_ms);
CREATE INDEX IF NOT EXISTS idx_samples_symbol ON samples(symbol);
`)
	return err
}

func (r *Repo) UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO latest_prices(symbol, price, ts_ms, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
		price=excluded.price, ts_ms=excluded.ts_ms, updated_at=excluded.updated_at
	`, symbol, price, ts, time.Now().UnixMilli())
	return err
}

func (r *Repo) GetLatestPrice(ctx context.Context, symbol string) (price float64, ts int64, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT price, ts_ms FROM latest_prices WHERE symbol=?`, symbol).
		Scan(&price, &ts)
	return
}

// InsertSample writes one row per quote in a single transaction.
func (r *Repo) InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples(ts_ms, symbol, price, has_price, created_at) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, q := range quotes {
		price := sql.NullFloat64{Float64: q.Price, Valid: q.OK}
		if _, err := stmt.ExecContext(ctx, ts, q.Symbol, price, q.OK, now); err != nil {
			return fmt.Errorf("insert sample %s: %w", q.Symbol, err)
		}
	}
	return tx.Commit()
}

// ListSamples returns the quotes of one symbol between from and to (inclusive, unix ms).
func (r *Repo) ListSamples(ctx context.Context, symbol string, from, to int64) ([]domain.Quote, []int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts_ms, price FROM samples
		WHERE symbol=? AND ts_ms BETWEEN ? AND ?
		ORDER BY ts_ms, id`, symbol, from, to)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var quotes []domain.Quote
	var stamps []int64
	for rows.Next() {
		var ts int64
		var price sql.NullFloat64
		if err := rows.Scan(&ts, &price); err != nil {
			return nil, nil, err
		}
		quotes = append(quotes, domain.Quote{Symbol: symbol, Price: price.Float64, OK: price.Valid})
		stamps = append(stamps, ts)
	}
	return quotes, stamps, rows.Err()
}

var _ port.Repository = (*Repo)(nil)
