package system

import (
	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	"go.uber.org/zap"
)

// DamageService applies damage to anything exposing Health and runs the
// one-shot death sequence.
type DamageService struct {
	deps Deps
}

func NewDamageService(deps Deps) *DamageService {
	return &DamageService{deps: deps}
}

// Apply damages target. It reports false when the target has no Health, is
// already dead, or amount is not positive; the hit is then silently dropped.
func (s *DamageService) Apply(target ecs.EntityID, amount float64, instigator ecs.EntityID) bool {
	ws := s.deps.World
	if !ws.ECS.Alive(target) {
		return false
	}
	h, ok := ws.Health.Get(target)
	if !ok {
		return false
	}
	applied, died := combat.ApplyDamage(h, amount)
	if applied == 0 && !died {
		return false
	}

	event.Publish(s.deps.Bus, event.Damaged{
		Entity:     target,
		Instigator: instigator,
		Amount:     amount,
		Health:     h.Current,
	})

	if died {
		s.die(target, instigator)
	}
	return true
}

func (s *DamageService) die(id, instigator ecs.EntityID) {
	ws := s.deps.World
	isPlayer := ws.IsPlayer(id)

	s.deps.Log.Info("combatant destroyed",
		zap.Uint64("entity", uint64(id)),
		zap.Uint64("instigator", uint64(instigator)),
		zap.Bool("player", isPlayer),
	)

	event.Publish(s.deps.Bus, event.Died{Entity: id, Instigator: instigator, IsPlayer: isPlayer})

	if b, ok := ws.Bodies.Get(id); ok {
		b.Simulate = false
		event.Emit(s.deps.Bus, event.DeathEffect{Entity: id, Position: b.Position})
	}
	ws.ECS.MarkForDestruction(id)
}
