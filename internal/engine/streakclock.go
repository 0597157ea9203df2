package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultStreakTick is how often the streak clock re-checks habits.
// Correctness only needs the check to run at least once per day; the short
// interval just keeps the daily reset prompt.
const DefaultStreakTick = time.Minute

// StreakClock is the one autonomous actor in the system: a recurring check
// that normalizes habit completed flags and breaks streaks once a day
// boundary has passed. Each pass is idempotent, so the tick interval is not
// correctness-sensitive.
type StreakClock struct {
	svc  *Service
	tick time.Duration
	log  zerolog.Logger
}

func NewStreakClock(svc *Service, tick time.Duration, log zerolog.Logger) *StreakClock {
	if tick <= 0 {
		tick = DefaultStreakTick
	}
	return &StreakClock{svc: svc, tick: tick, log: log}
}

// Run blocks until ctx is done, normalizing habits once immediately and then
// on every tick.
func (c *StreakClock) Run(ctx context.Context) {
	c.pass(ctx)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.pass(ctx)
		}
	}
}

func (c *StreakClock) pass(ctx context.Context) {
	changed, err := c.svc.NormalizeHabits(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("habit normalization failed")
		return
	}
	if changed {
		c.log.Info().Msg("habit streaks normalized")
	}
}
