package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"

	"github.com/redis/go-redis/v9"
)

type Repo struct {
	rdb        *redis.Client
	prefix     string
	ttl        time.Duration
	keyLatest  string // prefix + ":latest"
	tapeStream string
	tapeChan   string
	maxLen     int64
}

type LatestPrice struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Ts     int64   `json:"ts"`
}

// SampleMsg is what gets published on the tape channel.
type SampleMsg struct {
	Ts     int64              `json:"ts_ms"`
	Prices map[string]float64 `json:"prices"` // symbols without data are left out
}

func New(rdb *redis.Client, prefix string, ttl time.Duration, tapeStream, tapeChan string, maxLen int64) *Repo {
	if strings.TrimSpace(tapeStream) == "" {
		tapeStream = prefix + ":tape"
	}
	if strings.TrimSpace(tapeChan) == "" {
		tapeChan = prefix + ":tape:pub"
	}
	return &Repo{
		rdb:        rdb,
		prefix:     prefix,
		ttl:        ttl,
		keyLatest:  prefix + ":latest",
		tapeStream: tapeStream,
		tapeChan:   tapeChan,
		maxLen:     maxLen,
	}
}

func (r *Repo) TapeChannel() string { return r.tapeChan }

func (r *Repo) UpsertLatestPrice(ctx context.Context, symbol string, price float64, ts int64) error {
	lp := LatestPrice{Symbol: symbol, Price: price, Ts: ts}
	b, _ := json.Marshal(lp)

	// Hash: field = "BTCUSDT" -> json
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyLatest, symbol, string(b))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyLatest, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Repo) GetLatestPrice(ctx context.Context, symbol string) (*LatestPrice, error) {
	s, err := r.rdb.HGet(ctx, r.keyLatest, symbol).Result()
	if err != nil {
		return nil, err
	}
	var lp LatestPrice
	if err := json.Unmarshal([]byte(s), &lp); err != nil {
		return nil, err
	}
	return &lp, nil
}

func (r *Repo) InsertSample(ctx context.Context, ts int64, quotes []domain.Quote) error {
	msg := SampleMsg{Ts: ts, Prices: make(map[string]float64, len(quotes))}
	values := map[string]any{"ts_ms": ts}
	for _, q := range quotes {
		if !q.OK {
			values[q.Symbol] = ""
			continue
		}
		values[q.Symbol] = q.Price
		msg.Prices[q.Symbol] = q.Price
	}

	// 1) Stream: XADD <stream> MAXLEN n * ts_ms .. <symbol> <price> ..
	args := &redis.XAddArgs{Stream: r.tapeStream, Values: values}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
	}
	if err := r.rdb.XAdd(ctx, args).Err(); err != nil {
		return err
	}

	// 2) PubSub: PUBLISH <channel> json
	b, _ := json.Marshal(msg)
	return r.rdb.Publish(ctx, r.tapeChan, string(b)).Err()
}

// Close is a no-op; the client is owned by the container.
func (r *Repo) Close() error { return nil }

var _ port.Repository = (*Repo)(nil)
