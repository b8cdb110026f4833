package component

import (
	"time"

	"github.com/l1jgo/dogfight/internal/core/ecs"
)

// Weapon is a rate limited hitscan gun.
type Weapon struct {
	Interval     time.Duration
	Range        float64
	Damage       float64
	MuzzleOffset float64 // distance ahead of the body origin

	LastFire time.Duration
	HasFired bool

	// Trigger is a fire request consumed by WeaponSystem each tick.
	Trigger bool
}

// TargetLock is a weak reference to the best scoring enemy. It never keeps
// the target alive; resolve it through world.State.Resolve.
type TargetLock struct {
	Target ecs.EntityID
	Score  float64
}
