package system

import (
	"time"

	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
)

// ContactSystem sweeps each live missile along the path it flew this tick
// and detonates it on the first contact. Phase 4 (PostUpdate).
type ContactSystem struct {
	deps     Deps
	missiles *MissileSystem
	damage   *DamageService
}

func NewContactSystem(deps Deps, missiles *MissileSystem, damage *DamageService) *ContactSystem {
	return &ContactSystem{deps: deps, missiles: missiles, damage: damage}
}

func (s *ContactSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ContactSystem) Update(_ time.Duration) {
	ws := s.deps.World
	for _, id := range ws.Missiles.IDs() {
		m, ok := ws.Missiles.Get(id)
		if !ok || m.Detonated {
			continue
		}
		b, ok := ws.Bodies.Get(id)
		if !ok {
			continue
		}
		s.sweep(id, m, b)
	}
}

func (s *ContactSystem) sweep(id ecs.EntityID, m *component.Missile, b *physics.Body) {
	hit, ok := s.deps.World.Sweep(m.PrevPosition, b.Position, m.Radius, id, m.Instigator)
	if !ok {
		return
	}
	b.Position = hit.Point
	s.missiles.Detonate(id, hit.Entity, s.damage)
}
