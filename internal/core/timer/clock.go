package timer

import "time"

// Clock is the monotonic simulation clock. It only moves when the game loop
// advances it, never with wall time.
type Clock struct {
	now  time.Duration
	tick uint64
}

func NewClock() *Clock { return &Clock{} }

// Advance moves the clock forward by dt and counts one tick.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.now += dt
	c.tick++
}

// Now returns elapsed simulation time.
func (c *Clock) Now() time.Duration { return c.now }

// Tick returns the number of completed advances.
func (c *Clock) Tick() uint64 { return c.tick }
