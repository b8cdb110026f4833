package system

import (
	"fmt"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	phases [phaseCount][]System
	ticks  uint64
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register appends s to its phase. It panics on a phase outside the
// declared range, which is a wiring bug.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system %T: invalid phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
			s.Update(dt)
		}
	}
	r.ticks++
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, systems := range r.phases {
		n += len(systems)
	}
	return n
}

// Count returns the number of systems registered for phase.
func (r *Runner) Count(phase Phase) int {
	if phase < 0 || phase >= phaseCount {
		return 0
	}
	return len(r.phases[phase])
}

// Ticks returns how many full ticks have run.
func (r *Runner) Ticks() uint64 { return r.ticks }
