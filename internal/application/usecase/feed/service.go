package feed

import (
	"context"
	"errors"
	"sync"

	"tickertape/internal/application/port"
	"tickertape/internal/application/service"

	"github.com/rs/zerolog/log"
)

// ErrAllStopped is returned by Run when every listener has ended on its own.
var ErrAllStopped = errors.New("all feed listeners stopped")

// Listener is one long-lived streaming connection.
type Listener interface {
	Run(ctx context.Context) error
}

// ListenerFactory builds the listener bound to one symbol.
type ListenerFactory func(symbol string, handle func(port.Tick)) Listener

type ServiceDeps struct {
	Store       port.PriceWriter
	Symbols     []string
	NewListener ListenerFactory
}

// Service runs one listener per tracked symbol. Listeners are never restarted here.
type Service struct {
	deps   ServiceDeps
	prices *service.PriceService
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		deps:   deps,
		prices: service.NewPriceService(deps.Store),
	}
}

// Handle is the message callback handed to every listener.
func (s *Service) Handle(t port.Tick) {
	s.prices.Apply(t)
}

// Run blocks until every listener has returned or ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if len(s.deps.Symbols) == 0 {
		return errors.New("no symbols")
	}
	if s.deps.NewListener == nil {
		return errors.New("no listener factory")
	}

	var wg sync.WaitGroup
	for _, sym := range s.deps.Symbols {
		l := s.deps.NewListener(sym, s.Handle)
		wg.Add(1)
		go func(sym string, l Listener) {
			defer wg.Done()
			err := l.Run(ctx)
			if ctx.Err() != nil {
				log.Info().Str("symbol", sym).Msg("feed listener stopped")
				return
			}
			log.Error().Err(err).Str("symbol", sym).Msg("feed listener ended, no further updates for this symbol")
		}(sym, l)
		log.Info().Str("symbol", sym).Msg("feed listener started")
	}

	wg.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrAllStopped
}
