package game

import (
	"time"

	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/physics"
	"github.com/l1jgo/dogfight/internal/scripting"
	"github.com/l1jgo/dogfight/internal/system"
)

// Autopilot flies the player aircraft for headless matches: full throttle,
// wings level, nose onto the current lock, guns when lined up and a missile
// every MissileInterval while locked.
type Autopilot struct {
	MissileInterval time.Duration
	GunCone         float64

	lastMissile time.Duration
	fired       bool
	held        bool
}

func NewAutopilot(missileInterval time.Duration) *Autopilot {
	return &Autopilot{MissileInterval: missileInterval, GunCone: 0.995}
}

func (a *Autopilot) Controls(v system.PilotView) component.Controls {
	c := component.Controls{Throttle: 1}
	// Positive roll raises the right wing.
	c.Roll = physics.Clamp(-v.Right.Z()*2, -1, 1)

	if v.OnGround {
		// Rotate off the runway.
		c.Pitch = -1
		a.held = false
		return c
	}
	if !v.HasLock {
		// Level the nose and turn until something is ahead.
		c.Pitch = physics.Clamp(v.Forward.Z()*4, -1, 1)
		c.Yaw = 1
		a.held = false
		return c
	}

	dir := physics.SafeNormal(v.LockPos.Sub(v.Position))
	// Positive pitch lowers the nose.
	c.Pitch = physics.Clamp(-dir.Dot(v.Up)*4, -1, 1)
	c.Yaw = physics.Clamp(dir.Dot(v.Right)*4, -1, 1)
	c.Fire = dir.Dot(v.Forward) > a.GunCone

	// Missile fire is edge triggered: release for a tick after each press.
	if a.held {
		a.held = false
		return c
	}
	if !a.fired || v.Now-a.lastMissile >= a.MissileInterval {
		c.FireMissile = true
		a.held = true
		a.fired = true
		a.lastMissile = v.Now
	}
	return c
}

// scriptedPilot defers to the Lua pilot_input hook and falls back when the
// script fails.
type scriptedPilot struct {
	engine   *scripting.Engine
	fallback system.ControlSource
}

func (s *scriptedPilot) Controls(v system.PilotView) component.Controls {
	if c, ok := s.engine.PilotInput(v); ok {
		return c
	}
	return s.fallback.Controls(v)
}
