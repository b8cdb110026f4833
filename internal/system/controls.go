package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
)

// PilotView is what a control source sees of the player aircraft.
type PilotView struct {
	Now       time.Duration
	Position  mgl64.Vec3
	Forward   mgl64.Vec3
	Right     mgl64.Vec3
	Up        mgl64.Vec3
	Velocity  mgl64.Vec3
	Throttle  float64
	Airspeed  float64
	Altitude  float64
	OnGround  bool
	Health    float64
	HasLock   bool
	LockPos   mgl64.Vec3
	Remaining int
}

// ControlSource produces pilot input once per tick.
type ControlSource interface {
	Controls(v PilotView) component.Controls
}

// PlayerControlSystem maps pilot input onto the player aircraft: the trigger
// feeds the gun every tick, and a missile press launches at the current lock.
// Without a source the Controls component is left as set by the caller.
// Phase 0 (Input), after the clock.
type PlayerControlSystem struct {
	deps     Deps
	missiles *MissileSystem
	source   ControlSource

	missileHeld bool
}

func NewPlayerControlSystem(deps Deps, missiles *MissileSystem, source ControlSource) *PlayerControlSystem {
	return &PlayerControlSystem{deps: deps, missiles: missiles, source: source}
}

func (s *PlayerControlSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlayerControlSystem) Update(_ time.Duration) {
	ws := s.deps.World
	id, ok := ws.Player()
	if !ok || ws.ECS.Pending(id) {
		return
	}
	ctl, ok := ws.Controls.Get(id)
	if !ok {
		return
	}
	if s.source != nil {
		*ctl = s.source.Controls(s.view(id))
	}

	if w, ok := ws.Weapons.Get(id); ok {
		w.Trigger = ctl.Fire
	}

	pressed := ctl.FireMissile && !s.missileHeld
	s.missileHeld = ctl.FireMissile
	if !pressed || s.missiles == nil {
		return
	}
	if target, ok := LockedTarget(s.deps, id); ok {
		s.missiles.Launch(id, target)
	}
}

func (s *PlayerControlSystem) view(id ecs.EntityID) PilotView {
	ws := s.deps.World
	v := PilotView{Now: s.deps.Clock.Now(), Remaining: ws.Match.AliveEnemies}
	if b, ok := ws.Bodies.Get(id); ok {
		v.Position = b.Position
		v.Forward, v.Right, v.Up = b.Forward(), b.Right(), b.Up()
		v.Velocity = b.Velocity
	}
	if fm, ok := ws.Flights.Get(id); ok {
		v.Throttle, v.Airspeed, v.Altitude, v.OnGround = fm.Throttle, fm.Airspeed, fm.Altitude, fm.OnGround
	}
	if h, ok := ws.Health.Get(id); ok {
		v.Health = h.Current
	}
	if t, ok := LockedTarget(s.deps, id); ok {
		if tb, ok := ws.Bodies.Get(t); ok {
			v.HasLock, v.LockPos = true, tb.Position
		}
	}
	return v
}
