package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: clock advance, pilot controls
	PhasePreUpdate               // 1: timers, last tick's deferred events
	PhaseUpdate                  // 2: targeting, flight, AI, weapons, guidance
	PhasePhysics                 // 3: integrate bodies
	PhasePostUpdate              // 4: contacts, ground, match state
	PhaseCleanup                 // 5: destroy queued entities

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePhysics:
		return "physics"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
