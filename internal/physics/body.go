package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a rigid body integrated with semi-implicit Euler. Forces and
// accelerations accumulate between steps and are cleared by Integrate.
type Body struct {
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3 // world units per second
	AngularVelocity mgl64.Vec3 // world-frame radians per second
	Mass            float64
	LinearDamping   float64
	AngularDamping  float64
	Simulate        bool

	force      mgl64.Vec3
	accel      mgl64.Vec3
	angleAccel mgl64.Vec3
}

// NewBody returns a simulated body at pos facing along the orientation q.
func NewBody(pos mgl64.Vec3, q mgl64.Quat, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position:    pos,
		Orientation: q.Normalize(),
		Mass:        mass,
		Simulate:    true,
	}
}

func (b *Body) Forward() mgl64.Vec3 { return b.Orientation.Rotate(AxisForward) }
func (b *Body) Right() mgl64.Vec3   { return b.Orientation.Rotate(AxisRight) }
func (b *Body) Up() mgl64.Vec3      { return b.Orientation.Rotate(AxisUp) }

// AddForce accumulates a world-space force (mass dependent).
func (b *Body) AddForce(f mgl64.Vec3) { b.force = b.force.Add(f) }

// AddAcceleration accumulates a mass independent linear acceleration.
func (b *Body) AddAcceleration(a mgl64.Vec3) { b.accel = b.accel.Add(a) }

// AddAngularAcceleration accumulates a world-space angular acceleration in
// radians per second squared.
func (b *Body) AddAngularAcceleration(a mgl64.Vec3) {
	b.angleAccel = b.angleAccel.Add(a)
}

// AddTorqueDegrees is AddAngularAcceleration with the magnitude in degrees.
func (b *Body) AddTorqueDegrees(axis mgl64.Vec3, degPerSec2 float64) {
	b.AddAngularAcceleration(axis.Mul(mgl64.DegToRad(degPerSec2)))
}

// RotateLocal applies a rotation of angle radians about a body-local axis.
func (b *Body) RotateLocal(axis mgl64.Vec3, angle float64) {
	b.Orientation = b.Orientation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
}

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 { return b.Velocity.Len() }

// ClampSpeed rescales the velocity so its magnitude does not exceed max.
func (b *Body) ClampSpeed(max float64) {
	if max <= 0 {
		return
	}
	if s := b.Velocity.Len(); s > max {
		b.Velocity = b.Velocity.Mul(max / s)
	}
}

// Integrate advances the body by dt seconds and clears the accumulators.
// A non-simulated body keeps its velocity and only moves.
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	if b.Simulate {
		a := b.accel.Add(b.force.Mul(1 / b.Mass))
		b.Velocity = b.Velocity.Add(a.Mul(dt))
		b.AngularVelocity = b.AngularVelocity.Add(b.angleAccel.Mul(dt))
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1 / (1 + b.LinearDamping*dt))
		}
		if b.AngularDamping > 0 {
			b.AngularVelocity = b.AngularVelocity.Mul(1 / (1 + b.AngularDamping*dt))
		}
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	if w := b.AngularVelocity.Len(); w > epsilon {
		step := mgl64.QuatRotate(w*dt, b.AngularVelocity.Mul(1/w))
		b.Orientation = step.Mul(b.Orientation).Normalize()
	}
	b.force = mgl64.Vec3{}
	b.accel = mgl64.Vec3{}
	b.angleAccel = mgl64.Vec3{}
}

// Altitude returns the height above z = 0 in meters (world units are cm).
func (b *Body) Altitude() float64 { return b.Position.Z() / 100 }

// Airspeed returns the speed in km/h (world units are cm/s).
func (b *Body) Airspeed() float64 { return b.Velocity.Len() * 0.036 }

// Yaw returns the heading in degrees about world up.
func (b *Body) Yaw() float64 {
	f := b.Forward()
	return mgl64.RadToDeg(math.Atan2(f.Y(), f.X()))
}
