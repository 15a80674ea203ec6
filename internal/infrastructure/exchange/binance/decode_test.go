package binance

import (
	"errors"
	"testing"
)

func TestDecodeTicker(t *testing.T) {
	tk, err := DecodeTicker([]byte(`{"e":"24hrTicker","s":"BTCUSDT","c":"63250.50"}`))
	if err != nil {
		t.Fatalf("DecodeTicker failed: %v", err)
	}
	if tk.Symbol != "BTCUSDT" || tk.Price != 63250.50 {
		t.Errorf("unexpected ticker: %+v", tk)
	}
}

func TestDecodeTickerLowercaseSymbol(t *testing.T) {
	tk, err := DecodeTicker([]byte(`{"s":" ethusdt ","c":" 3100.1 "}`))
	if err != nil {
		t.Fatalf("DecodeTicker failed: %v", err)
	}
	if tk.Symbol != "ETHUSDT" || tk.Price != 3100.1 {
		t.Errorf("unexpected ticker: %+v", tk)
	}
}

func TestDecodeTickerCombinedEnvelope(t *testing.T) {
	tk, err := DecodeTicker([]byte(`{"stream":"btcusdt@ticker","data":{"s":"BTCUSDT","c":"1.5"}}`))
	if err != nil {
		t.Fatalf("DecodeTicker failed: %v", err)
	}
	if tk.Symbol != "BTCUSDT" || tk.Price != 1.5 {
		t.Errorf("unexpected ticker: %+v", tk)
	}
}

func TestDecodeTickerAck(t *testing.T) {
	_, err := DecodeTicker([]byte(`{"result":null,"id":1}`))
	if !errors.Is(err, ErrAck) {
		t.Errorf("expected ErrAck, got %v", err)
	}
}

func TestDecodeTickerFailures(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    error
	}{
		{"empty", ``, ErrMalformed},
		{"not json", `hello`, ErrMalformed},
		{"array", `[1,2]`, ErrMalformed},
		{"truncated", `{"s":"BTCUSDT","c":"1`, ErrMalformed},
		{"symbol wrong type", `{"s":1,"c":"1"}`, ErrMalformed},
		{"missing symbol", `{"c":"100.0"}`, ErrMissingSymbol},
		{"blank symbol", `{"s":"  ","c":"100.0"}`, ErrMissingSymbol},
		{"missing price", `{"s":"BTCUSDT"}`, ErrMissingPrice},
		{"blank price", `{"s":"BTCUSDT","c":""}`, ErrMissingPrice},
		{"non numeric price", `{"s":"BTCUSDT","c":"abc"}`, ErrInvalidPrice},
		{"nan price", `{"s":"BTCUSDT","c":"NaN"}`, ErrInvalidPrice},
		{"inf price", `{"s":"BTCUSDT","c":"+Inf"}`, ErrInvalidPrice},
		{"negative price", `{"s":"BTCUSDT","c":"-5"}`, ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeTicker([]byte(tc.payload))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStreamName(t *testing.T) {
	if got := StreamName("BTCUSDT", ""); got != "btcusdt@ticker" {
		t.Errorf("got %q", got)
	}
	if got := StreamName(" ETHUSDT ", "miniTicker"); got != "ethusdt@miniTicker" {
		t.Errorf("got %q", got)
	}
}
