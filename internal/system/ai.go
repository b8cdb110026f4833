package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
	"go.uber.org/zap"
)

// AISystem flies enemy aircraft. Seeking holds a stand-off distance from the
// player and shoots when lined up; Evading spins at a fixed rate and never
// shoots. Damage starts an evasion window that ends on a scheduled timer.
// Phase 2 (Update).
type AISystem struct {
	deps Deps
}

func NewAISystem(deps Deps) *AISystem {
	s := &AISystem{deps: deps}
	event.Subscribe(deps.Bus, s.onDamaged)
	deps.World.ECS.OnDestroy(s.onDestroy)
	return s
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AISystem) Update(dt time.Duration) {
	ws := s.deps.World
	sec := dt.Seconds()
	now := s.deps.Clock.Now()

	var player *physics.Body
	if pid, ok := ws.Player(); ok {
		player, _ = ws.Bodies.Get(pid)
	}

	ecs.Each2(ws.Pilots, ws.Bodies, func(id ecs.EntityID, p *component.Pilot, b *physics.Body) {
		if ws.ECS.Pending(id) {
			return
		}
		b.AddForce(b.Forward().Mul(p.FlightForce))
		b.ClampSpeed(p.MaxSpeed)

		if player == nil {
			return
		}
		switch p.State {
		case component.AISeeking:
			steerStandOff(p, b, player.Position, sec)
			if w, ok := ws.Weapons.Get(id); ok {
				s.checkAndFire(p, w, b, player.Position, now)
			}
		case component.AIEvading:
			// 閃避：固定偏航速率繞機身上軸旋轉，不開火
			b.RotateLocal(physics.AxisUp, mgl64.DegToRad(p.EvasionTurnRate)*sec)
		}
	})
}

// steerStandOff turns toward the player when farther than the avoidance
// distance and away from it when closer.
func steerStandOff(p *component.Pilot, b *physics.Body, target mgl64.Vec3, sec float64) {
	toPlayer := target.Sub(b.Position)
	dir := toPlayer
	if toPlayer.Len() <= p.AvoidanceDistance {
		dir = toPlayer.Mul(-1)
	}
	b.Orientation = physics.InterpTo(b.Orientation, physics.LookRotation(dir), sec, p.TurnSpeed)
}

func (s *AISystem) checkAndFire(p *component.Pilot, w *component.Weapon, b *physics.Body, target mgl64.Vec3, now time.Duration) {
	if !combat.Ready(w, now) {
		return
	}
	dir := physics.SafeNormal(target.Sub(b.Position))
	if b.Forward().Dot(dir) > p.FireCone {
		w.Trigger = true
	}
}

// onDamaged 受到傷害 → 進入閃避；閃避中再受傷不重置計時
func (s *AISystem) onDamaged(ev event.Damaged) {
	p, ok := s.deps.World.Pilots.Get(ev.Entity)
	if !ok || p.State == component.AIEvading {
		return
	}
	s.beginEvasion(ev.Entity, p)
}

func (s *AISystem) beginEvasion(id ecs.EntityID, p *component.Pilot) {
	now := s.deps.Clock.Now()
	p.State = component.AIEvading
	p.EvadedAt = now
	p.EvasionTimer = s.deps.Timers.Schedule(now+p.EvasionDuration, func() {
		s.endEvasion(id)
	})
	s.deps.Log.Debug("ai evading", zap.Uint64("entity", uint64(id)), zap.Duration("for", p.EvasionDuration))
}

func (s *AISystem) endEvasion(id ecs.EntityID) {
	p, ok := s.deps.World.Pilots.Get(id)
	if !ok {
		return
	}
	p.State = component.AISeeking
	p.EvasionTimer = 0
}

func (s *AISystem) onDestroy(id ecs.EntityID) {
	if p, ok := s.deps.World.Pilots.Get(id); ok && p.EvasionTimer != 0 {
		s.deps.Timers.Cancel(p.EvasionTimer)
	}
}
