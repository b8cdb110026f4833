package system

import (
	"time"

	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/core/timer"
)

// ClockSystem advances the simulation clock by the fixed tick before anything
// else reads it. Phase 0 (Input), registered first.
type ClockSystem struct {
	clock *timer.Clock
}

func NewClockSystem(c *timer.Clock) *ClockSystem {
	return &ClockSystem{clock: c}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ClockSystem) Update(dt time.Duration) {
	s.clock.Advance(dt)
}

// TimerSystem polls the scheduled-event queue once per step.
// Phase 1 (PreUpdate).
type TimerSystem struct {
	clock  *timer.Clock
	timers *timer.Queue
}

func NewTimerSystem(c *timer.Clock, q *timer.Queue) *TimerSystem {
	return &TimerSystem{clock: c, timers: q}
}

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *TimerSystem) Update(_ time.Duration) {
	s.timers.Poll(s.clock.Now())
}
