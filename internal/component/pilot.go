package component

import (
	"time"

	"github.com/l1jgo/dogfight/internal/core/timer"
)

// AIState is the two-state combat machine of enemy aircraft.
type AIState int

const (
	AISeeking AIState = iota
	AIEvading
)

func (s AIState) String() string {
	if s == AIEvading {
		return "evading"
	}
	return "seeking"
}

// Pilot drives an enemy aircraft.
type Pilot struct {
	State AIState

	FlightForce       float64
	TurnSpeed         float64
	AvoidanceDistance float64
	MaxSpeed          float64
	EvasionDuration   time.Duration
	EvasionTurnRate   float64 // degrees per second about local up
	FireCone          float64 // minimum forward·dir(player) to shoot

	EvasionTimer timer.Handle
	EvadedAt     time.Duration
}
