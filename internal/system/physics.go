package system

import (
	"math"
	"time"

	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
)

// PhysicsSystem integrates every body, keeps aircraft above the ground and
// lets missiles align with their flight path. Phase 3 (Physics).
type PhysicsSystem struct {
	deps     Deps
	missiles *MissileSystem
}

func NewPhysicsSystem(deps Deps, missiles *MissileSystem) *PhysicsSystem {
	return &PhysicsSystem{deps: deps, missiles: missiles}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	ws := s.deps.World
	sec := dt.Seconds()
	ws.Missiles.Each(func(id ecs.EntityID, m *component.Missile) {
		if b, ok := ws.Bodies.Get(id); ok {
			m.PrevPosition = b.Position
		}
	})
	ws.Bodies.Each(func(_ ecs.EntityID, b *physics.Body) {
		b.Integrate(sec)
	})
	if s.missiles != nil {
		s.missiles.FollowVelocity()
	}
	ecs.Each2(ws.Colliders, ws.Bodies, func(id ecs.EntityID, c *component.Collider, b *physics.Body) {
		sink, hit := physics.ResolveGround(b, c.Radius, ws.Ground)
		if !hit {
			return
		}
		if fm, ok := ws.Flights.Get(id); ok {
			fm.TouchdownSink = math.Max(fm.TouchdownSink, sink)
		}
	})
}
