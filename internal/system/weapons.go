package system

import (
	"time"

	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
)

// WeaponSystem resolves pulled triggers: rate limit, then a ray from the
// muzzle along the nose to the weapon's range. Phase 2 (Update).
type WeaponSystem struct {
	deps   Deps
	damage *DamageService
}

func NewWeaponSystem(deps Deps, damage *DamageService) *WeaponSystem {
	return &WeaponSystem{deps: deps, damage: damage}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WeaponSystem) Update(_ time.Duration) {
	ws := s.deps.World
	now := s.deps.Clock.Now()
	ecs.Each2(ws.Weapons, ws.Bodies, func(id ecs.EntityID, w *component.Weapon, b *physics.Body) {
		pulled := w.Trigger
		// Players re-arm the trigger every tick from controls; AI re-arms
		// it when lined up.
		w.Trigger = false
		if !pulled || ws.ECS.Pending(id) {
			return
		}
		// Damage earlier this tick may have sent the pilot evading after
		// it lined up.
		if p, ok := ws.Pilots.Get(id); ok && p.State == component.AIEvading {
			return
		}
		if !combat.TryFire(w, now) {
			return
		}
		s.discharge(id, w, b)
	})
}

// discharge performs one shot. Only the first blocking hit counts.
func (s *WeaponSystem) discharge(shooter ecs.EntityID, w *component.Weapon, b *physics.Body) {
	fwd := b.Forward()
	muzzle := b.Position.Add(fwd.Mul(w.MuzzleOffset))
	event.Emit(s.deps.Bus, event.WeaponFired{Shooter: shooter, Muzzle: muzzle, Forward: fwd})

	hit, ok := s.deps.World.RayCast(muzzle, fwd, w.Range, shooter)
	if !ok {
		return
	}
	damaged := false
	if !hit.Ground {
		damaged = s.damage.Apply(hit.Entity, w.Damage, shooter)
	}
	event.Emit(s.deps.Bus, event.ShotImpact{Shooter: shooter, Hit: hit.Entity, Point: hit.Point, Damaged: damaged})
}
