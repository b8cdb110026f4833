package system

import (
	"time"

	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
)

// TargetingSystem rescans every lock from scratch each tick. There is no
// memory of the previous lock. Phase 2 (Update).
type TargetingSystem struct {
	deps  Deps
	cands []combat.Candidate
}

func NewTargetingSystem(deps Deps) *TargetingSystem {
	return &TargetingSystem{deps: deps, cands: make([]combat.Candidate, 0, 16)}
}

func (s *TargetingSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TargetingSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ecs.Each3(ws.Locks, ws.Bodies, ws.Combatants, func(id ecs.EntityID, lock *component.TargetLock, b *physics.Body, c *component.Combatant) {
		s.cands = s.cands[:0]
		ws.Hostiles(c.Faction, func(other ecs.EntityID, ob *physics.Body) {
			s.cands = append(s.cands, combat.Candidate{ID: other, Position: ob.Position})
		})
		best, score, ok := combat.SelectTarget(b.Position, b.Forward(), s.cands)
		if !ok {
			lock.Target, lock.Score = ecs.None, 0
			return
		}
		lock.Target, lock.Score = best.ID, score
	})
}

// LockedTarget resolves id's current lock, if any.
func LockedTarget(deps Deps, id ecs.EntityID) (ecs.EntityID, bool) {
	lock, ok := deps.World.Locks.Get(id)
	if !ok || lock.Target.IsZero() {
		return ecs.None, false
	}
	return deps.World.Resolve(lock.Target)
}
