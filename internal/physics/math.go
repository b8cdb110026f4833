package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// Local axes of an unrotated body: X forward, Y right, Z up.
var (
	AxisForward = mgl64.Vec3{1, 0, 0}
	AxisRight   = mgl64.Vec3{0, 1, 0}
	AxisUp      = mgl64.Vec3{0, 0, 1}
)

// SafeNormal returns v normalized, or the zero vector when v is too short
// to have a direction.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// LookRotation returns the orientation whose forward axis points along dir
// with the up axis kept as close to world up as possible. A zero dir yields
// the identity.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	f := SafeNormal(dir)
	if f.Len() == 0 {
		return mgl64.QuatIdent()
	}
	r := SafeNormal(AxisUp.Cross(f))
	if r.Len() == 0 {
		// Looking straight up or down: any right axis orthogonal to f works.
		r = AxisRight
	}
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(f, r, u)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// InterpTo moves current toward target at a constant interpolation speed,
// reaching it when dt*speed >= 1. A non-positive speed snaps to target.
func InterpTo(current, target mgl64.Quat, dt, speed float64) mgl64.Quat {
	if speed <= 0 {
		return target
	}
	alpha := clamp(dt*speed, 0, 1)
	if alpha == 1 {
		return target
	}
	// Take the short way round.
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl64.QuatSlerp(current, target, alpha).Normalize()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 { return clamp(v, lo, hi) }
