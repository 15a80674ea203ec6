package binance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tickertape/internal/domain"
)

var (
	ErrMalformed     = errors.New("malformed payload")
	ErrMissingSymbol = errors.New("missing symbol field")
	ErrMissingPrice  = errors.New("missing last price field")
	ErrInvalidPrice  = errors.New("invalid last price")
	// ErrAck marks the response to our own SUBSCRIBE request.
	ErrAck = errors.New("subscribe ack")
)

// Ticker is a decoded 24hr ticker update.
type Ticker struct {
	Symbol string
	Price  float64
}

type tickerMsg struct {
	Symbol *string `json:"s"`
	Close  *string `json:"c"`
}

type combinedMsg struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// DecodeTicker parses one inbound payload into a Ticker.
// It never panics; every failure is reported as a wrapped sentinel error.
func DecodeTicker(b []byte) (Ticker, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return Ticker{}, fmt.Errorf("%w: not a json object", ErrMalformed)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return Ticker{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if _, ok := raw["data"]; ok {
		var c combinedMsg
		if err := json.Unmarshal(b, &c); err != nil {
			return Ticker{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return DecodeTicker(c.Data)
	}

	if _, hasID := raw["id"]; hasID {
		if _, hasResult := raw["result"]; hasResult {
			return Ticker{}, ErrAck
		}
	}

	var m tickerMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return Ticker{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if m.Symbol == nil || domain.NormalizeSymbol(*m.Symbol) == "" {
		return Ticker{}, ErrMissingSymbol
	}
	if m.Close == nil || strings.TrimSpace(*m.Close) == "" {
		return Ticker{}, ErrMissingPrice
	}

	px, err := strconv.ParseFloat(strings.TrimSpace(*m.Close), 64)
	if err != nil {
		return Ticker{}, fmt.Errorf("%w: %q", ErrInvalidPrice, *m.Close)
	}
	if !domain.ValidPrice(px) {
		return Ticker{}, fmt.Errorf("%w: %q", ErrInvalidPrice, *m.Close)
	}

	return Ticker{Symbol: domain.NormalizeSymbol(*m.Symbol), Price: px}, nil
}
