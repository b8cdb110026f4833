package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/physics"
)

var down = mgl64.Vec3{0, 0, -1}

// FlightSystem turns pilot controls into forces and torques on player
// aircraft: thrust, drag, lift, and rate torques about the body axes.
// Phase 2 (Update).
type FlightSystem struct {
	deps   Deps
	damage *DamageService
}

func NewFlightSystem(deps Deps, damage *DamageService) *FlightSystem {
	return &FlightSystem{deps: deps, damage: damage}
}

func (s *FlightSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *FlightSystem) Update(dt time.Duration) {
	ws := s.deps.World
	sec := dt.Seconds()
	ecs.Each2(ws.Flights, ws.Bodies, func(id ecs.EntityID, fm *component.FlightModel, b *physics.Body) {
		if ws.ECS.Pending(id) {
			return
		}
		ctl, ok := ws.Controls.Get(id)
		if !ok {
			ctl = &component.Controls{}
		}
		s.checkGround(id, fm, b)
		fm.Throttle = physics.Clamp(fm.Throttle+ctl.Throttle*fm.ThrottleRate*sec, 0, 1)
		applyAerodynamics(fm, ctl, b)
		fm.Airspeed = b.Airspeed()
		fm.Altitude = b.Altitude()
	})
}

// checkGround probes GroundProbe below the aircraft's collider. Touching down
// faster than the crash speed costs CrashDamage. A dive fast enough to reach
// the ground within one step has its sink rate taken from the ground contact,
// since the contact already zeroed the vertical velocity.
func (s *FlightSystem) checkGround(id ecs.EntityID, fm *component.FlightModel, b *physics.Body) {
	probe := fm.GroundProbe
	if c, ok := s.deps.World.Colliders.Get(id); ok {
		probe += c.Radius
	}
	_, hit := s.deps.World.RayCast(b.Position, down, probe, id)
	// 著陸瞬間的下沉速度
	sink := math.Max(-b.Velocity.Z(), fm.TouchdownSink)
	fm.TouchdownSink = 0
	if hit && !fm.OnGround && sink > fm.CrashSpeed {
		s.damage.Apply(id, fm.CrashDamage, ecs.None)
	}
	fm.OnGround = hit
}

func applyAerodynamics(fm *component.FlightModel, ctl *component.Controls, b *physics.Body) {
	vdir := physics.SafeNormal(b.Velocity)
	fwd, right, up := b.Forward(), b.Right(), b.Up()

	b.AddForce(fwd.Mul(fm.Throttle * fm.MaxThrust))

	// Airspeed is last tick's telemetry.
	if fm.Airspeed > 0.01 {
		b.AddForce(vdir.Mul(-fm.Airspeed * fm.Airspeed * fm.Drag))
	}
	if !fm.OnGround {
		liftDir := physics.SafeNormal(vdir.Cross(right))
		b.AddForce(liftDir.Mul(fm.Airspeed * fm.Airspeed * fm.Lift))
	}

	b.AddTorqueDegrees(right, ctl.Pitch*fm.PitchRate)
	b.AddTorqueDegrees(fwd, ctl.Roll*fm.RollRate)
	if fm.OnGround {
		b.AddTorqueDegrees(up, ctl.GroundSteer*fm.GroundSteerRate)
	} else {
		b.AddTorqueDegrees(up, ctl.Yaw*fm.YawRate)
	}
}
