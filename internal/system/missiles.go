package system

import (
	"time"

	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
	"go.uber.org/zap"
)

// MissileSystem launches homing missiles and steers them each tick by pure
// pursuit: accelerate toward the target's current position, cap the speed,
// point the nose along the velocity. Phase 2 (Update).
type MissileSystem struct {
	deps Deps
}

func NewMissileSystem(deps Deps) *MissileSystem {
	return &MissileSystem{deps: deps}
}

func (s *MissileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Launch fires one missile from shooter at target. It needs a Launcher on
// the shooter; a zero target launches unguided.
func (s *MissileSystem) Launch(shooter, target ecs.EntityID) (ecs.EntityID, bool) {
	ws := s.deps.World
	l, ok := ws.Launchers.Get(shooter)
	if !ok {
		return ecs.None, false
	}
	sb, ok := ws.Bodies.Get(shooter)
	if !ok || ws.ECS.Pending(shooter) {
		return ecs.None, false
	}

	fwd := sb.Forward()
	pos := sb.Position.Add(fwd.Mul(l.MuzzleOffset))
	id := ws.ECS.CreateEntity()
	body := physics.NewBody(pos, sb.Orientation, 1)
	body.Velocity = fwd.Mul(l.Speed)
	ws.Bodies.Set(id, body)

	m := &component.Missile{
		Target:             target,
		Instigator:         shooter,
		Damage:             l.Damage,
		HomingAcceleration: l.HomingAcceleration,
		MaxSpeed:           l.MaxSpeed,
		Radius:             l.Radius,
		PrevPosition:       pos,
	}
	m.Expiry = s.deps.Timers.Schedule(s.deps.Clock.Now()+l.Lifetime, func() { s.expire(id) })
	// No Collider: missiles never block rays, their radius only inflates
	// their own sweep.
	ws.Missiles.Set(id, m)
	l.Fired++

	event.Emit(s.deps.Bus, event.MissileLaunched{Missile: id, Shooter: shooter, Target: target})
	s.deps.Log.Debug("missile away",
		zap.Uint64("missile", uint64(id)),
		zap.Uint64("target", uint64(target)),
	)
	return id, true
}

func (s *MissileSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ecs.Each2(ws.Missiles, ws.Bodies, func(id ecs.EntityID, m *component.Missile, b *physics.Body) {
		if m.Detonated || m.Target.IsZero() {
			return
		}
		if _, ok := ws.Resolve(m.Target); !ok {
			// Target gone: keep flying straight until impact or expiry.
			m.Target = ecs.None
			return
		}
		tb, ok := ws.Bodies.Get(m.Target)
		if !ok {
			return
		}
		dir := physics.SafeNormal(tb.Position.Sub(b.Position))
		b.AddAcceleration(dir.Mul(m.HomingAcceleration))
	})
}

// FollowVelocity caps missile speed and turns each missile's nose to its
// velocity after integration.
func (s *MissileSystem) FollowVelocity() {
	ws := s.deps.World
	ecs.Each2(ws.Missiles, ws.Bodies, func(_ ecs.EntityID, m *component.Missile, b *physics.Body) {
		b.ClampSpeed(m.MaxSpeed)
		if b.Speed() > 0 {
			b.Orientation = physics.LookRotation(b.Velocity)
		}
	})
}

// Detonate ends a missile's flight on contact with hit. Only the first call
// for a missile has any effect.
func (s *MissileSystem) Detonate(id ecs.EntityID, hit ecs.EntityID, damage *DamageService) bool {
	ws := s.deps.World
	m, ok := ws.Missiles.Get(id)
	if !ok || m.Detonated {
		return false
	}
	m.Detonated = true
	s.deps.Timers.Cancel(m.Expiry)

	if !hit.IsZero() && hit != id {
		damage.Apply(hit, m.Damage, m.Instigator)
	}
	b, _ := ws.Bodies.Get(id)
	ev := event.MissileDetonated{Missile: id, Hit: hit}
	if b != nil {
		ev.Point = b.Position
	}
	event.Emit(s.deps.Bus, ev)
	ws.ECS.MarkForDestruction(id)
	return true
}

func (s *MissileSystem) expire(id ecs.EntityID) {
	ws := s.deps.World
	m, ok := ws.Missiles.Get(id)
	if !ok || m.Detonated {
		return
	}
	m.Detonated = true
	event.Emit(s.deps.Bus, event.MissileExpired{Missile: id})
	ws.ECS.MarkForDestruction(id)
}
