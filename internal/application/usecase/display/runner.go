package display

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Mode is a timer-driven presentation of the price store.
type Mode interface {
	Name() string
	Interval() time.Duration
	Render(now time.Time) error
}

// Run renders m once per interval until ctx is done. Render errors are logged only.
func Run(ctx context.Context, m Mode) error {
	interval := m.Interval()
	if interval <= 0 {
		interval = DefaultRefresh
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("mode", m.Name()).Dur("interval", interval).Msg("display started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := m.Render(now); err != nil {
				log.Warn().Err(err).Str("mode", m.Name()).Msg("render failed")
			}
		}
	}
}
