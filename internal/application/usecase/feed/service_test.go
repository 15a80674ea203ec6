package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tickertape/internal/application/port"
	"tickertape/internal/domain"
)

type scriptedListener struct {
	ticks  []port.Tick
	handle func(port.Tick)
	block  bool
	err    error
}

func (l *scriptedListener) Run(ctx context.Context) error {
	for _, t := range l.ticks {
		l.handle(t)
	}
	if l.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return l.err
}

func scriptedFactory(script map[string][]port.Tick, block bool) (ListenerFactory, *[]string) {
	var mu sync.Mutex
	var started []string
	return func(symbol string, handle func(port.Tick)) Listener {
		mu.Lock()
		started = append(started, symbol)
		mu.Unlock()
		return &scriptedListener{
			ticks:  script[symbol],
			handle: handle,
			block:  block,
			err:    errors.New("connection closed"),
		}
	}, &started
}

func TestServiceRunOneListenerPerSymbol(t *testing.T) {
	store := domain.NewPriceStore([]string{"BTCUSDT", "ETHUSDT"})
	factory, started := scriptedFactory(map[string][]port.Tick{
		"BTCUSDT": {{Symbol: "BTCUSDT", Price: 63250.50}, {Symbol: "DOGEUSDT", Price: 0.15}},
		"ETHUSDT": {{Symbol: "ETHUSDT", Price: 3100}},
	}, false)

	svc := NewService(ServiceDeps{Store: store, Symbols: store.Symbols(), NewListener: factory})

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrAllStopped) {
		t.Fatalf("expected ErrAllStopped, got %v", err)
	}
	if len(*started) != 2 {
		t.Errorf("expected 2 listeners, got %v", *started)
	}
	if px, _ := store.Get("BTCUSDT"); px != 63250.50 {
		t.Errorf("BTCUSDT = %v", px)
	}
	if px, _ := store.Get("ETHUSDT"); px != 3100 {
		t.Errorf("ETHUSDT = %v", px)
	}
	if _, ok := store.Get("DOGEUSDT"); ok {
		t.Error("untracked symbol stored")
	}
}

func TestServiceRunCancel(t *testing.T) {
	store := domain.NewPriceStore([]string{"BTCUSDT"})
	factory, _ := scriptedFactory(nil, true)
	svc := NewService(ServiceDeps{Store: store, Symbols: store.Symbols(), NewListener: factory})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServiceRunValidation(t *testing.T) {
	svc := NewService(ServiceDeps{Store: domain.NewPriceStore(nil)})
	if err := svc.Run(context.Background()); err == nil {
		t.Error("expected error for empty symbols")
	}
}
