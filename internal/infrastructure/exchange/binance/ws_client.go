package binance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	DefaultWsURL        = "wss://fstream.binance.com/ws"
	DefaultStreamSuffix = "ticker"

	dialTimeout  = 10 * time.Second
	readDeadline = 60 * time.Second
	pingEvery    = 25 * time.Second
	writeWait    = 5 * time.Second
)

// Handler receives every successfully decoded ticker.
type Handler func(Ticker)

// RetryConfig controls reconnects after a dropped connection.
// MaxRetries == 0 disables reconnecting, MaxRetries < 0 retries forever.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

type ListenerConfig struct {
	WsURL     string // e.g. wss://fstream.binance.com/ws
	Stream    string // e.g. btcusdt@ticker
	RequestID int64
	Retry     RetryConfig
}

// Listener keeps one streaming connection for one stream name.
type Listener struct {
	cfg     ListenerConfig
	handler Handler
}

type subscribeMsg struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int64    `json:"id"`
}

// StreamName builds the stream name for a symbol, e.g. BTCUSDT -> btcusdt@ticker.
func StreamName(symbol, suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		suffix = DefaultStreamSuffix
	}
	return strings.ToLower(strings.TrimSpace(symbol)) + "@" + suffix
}

func NewListener(cfg ListenerConfig, handler Handler) *Listener {
	cfg.WsURL = strings.TrimSpace(cfg.WsURL)
	if cfg.WsURL == "" {
		cfg.WsURL = DefaultWsURL
	}
	if cfg.RequestID == 0 {
		cfg.RequestID = 1
	}
	if cfg.Retry.InitialDelay <= 0 {
		cfg.Retry.InitialDelay = 500 * time.Millisecond
	}
	if cfg.Retry.MaxDelay < cfg.Retry.InitialDelay {
		cfg.Retry.MaxDelay = 10 * time.Second
	}
	return &Listener{cfg: cfg, handler: handler}
}

func (l *Listener) Stream() string { return l.cfg.Stream }

// Run connects, subscribes and feeds the handler until the connection ends
// (and retries are exhausted) or ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	if l.cfg.Stream == "" {
		return errors.New("binance stream empty")
	}

	backoff := l.cfg.Retry.InitialDelay
	for attempt := 0; ; attempt++ {
		err := l.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Error().Err(err).
			Str("stream", l.cfg.Stream).
			Int("attempt", attempt).
			Msg("ws feed lost, price frozen at last value")

		if l.cfg.Retry.MaxRetries >= 0 && attempt >= l.cfg.Retry.MaxRetries {
			return err
		}

		log.Warn().
			Str("stream", l.cfg.Stream).
			Int64("delay_ms", backoff.Milliseconds()).
			Msg("ws reconnecting")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = minDur(backoff*2, l.cfg.Retry.MaxDelay)
	}
}

func (l *Listener) session(ctx context.Context) error {
	log.Info().Str("stream", l.cfg.Stream).Str("url", l.cfg.WsURL).Msg("ws connecting")

	cctx, cancel := context.WithTimeout(ctx, dialTimeout)
	conn, _, err := websocket.DefaultDialer.DialContext(cctx, l.cfg.WsURL, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.cfg.WsURL, err)
	}
	defer conn.Close()

	// no ack is awaited; the ack shows up in the read loop and is skipped there
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(subscribeMsg{
		Method: "SUBSCRIBE",
		Params: []string{l.cfg.Stream},
		ID:     l.cfg.RequestID,
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", l.cfg.Stream, err)
	}
	_ = conn.SetWriteDeadline(time.Time{})

	log.Info().Str("stream", l.cfg.Stream).Msg("ws subscribed")

	return readLoop(ctx, conn, l.onMessage)
}

func (l *Listener) onMessage(b []byte) {
	t, err := DecodeTicker(b)
	switch {
	case errors.Is(err, ErrAck):
		log.Debug().Str("stream", l.cfg.Stream).Msg("subscribe acknowledged")
		return
	case err != nil:
		log.Warn().Err(err).Str("stream", l.cfg.Stream).Msg("ticker decode failed")
		return
	}
	if l.handler != nil {
		l.handler(t)
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	pingTicker := time.NewTicker(pingEvery)
	defer pingTicker.Stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
			onMsg(b)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-pingTicker.C:
			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait))
		}
	}
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
