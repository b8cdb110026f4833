package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/core/ecs"
)

// Damaged is published synchronously after health was reduced.
type Damaged struct {
	Entity     ecs.EntityID
	Instigator ecs.EntityID
	Amount     float64
	Health     float64
}

// Died is published synchronously, exactly once per entity lifetime.
type Died struct {
	Entity     ecs.EntityID
	Instigator ecs.EntityID
	IsPlayer   bool
}

// PlayerDied and EnemyDestroyed are the two terminal notifications a death
// fans out to.
type PlayerDied struct {
	Entity ecs.EntityID
}

type EnemyDestroyed struct {
	Entity    ecs.EntityID
	Remaining int
}

// MatchEnded is published when the match reaches an outcome.
type MatchEnded struct {
	Outcome string
	Tick    uint64
}

// Effect events below are emitted on the deferred buffer and are best effort.

type WeaponFired struct {
	Shooter ecs.EntityID
	Muzzle  mgl64.Vec3
	Forward mgl64.Vec3
}

type ShotImpact struct {
	Shooter ecs.EntityID
	Hit     ecs.EntityID
	Point   mgl64.Vec3
	Damaged bool
}

type MissileLaunched struct {
	Missile ecs.EntityID
	Shooter ecs.EntityID
	Target  ecs.EntityID
}

type MissileDetonated struct {
	Missile ecs.EntityID
	Hit     ecs.EntityID
	Point   mgl64.Vec3
}

type MissileExpired struct {
	Missile ecs.EntityID
}

type DeathEffect struct {
	Entity   ecs.EntityID
	Position mgl64.Vec3
}
