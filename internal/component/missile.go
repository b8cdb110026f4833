package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/timer"
)

// Launcher lets an aircraft fire homing missiles at its lock.
type Launcher struct {
	Speed              float64
	MaxSpeed           float64
	HomingAcceleration float64
	Damage             float64
	Radius             float64
	Lifetime           time.Duration
	MuzzleOffset       float64

	Fired int
}

// Missile is a homing projectile in flight.
type Missile struct {
	Target             ecs.EntityID
	Instigator         ecs.EntityID
	Damage             float64
	HomingAcceleration float64
	MaxSpeed           float64
	Radius             float64

	PrevPosition mgl64.Vec3
	Expiry       timer.Handle
	Detonated    bool
}
