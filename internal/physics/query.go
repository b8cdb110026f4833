package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ground is an infinite horizontal plane at height Z.
type Ground struct {
	Enabled bool
	Z       float64
}

// RaySphere intersects the segment origin + dir*t, t in [0, maxDist], with a
// sphere. dir must be unit length. It returns the entry distance. A ray
// starting inside the sphere hits at t = 0.
func RaySphere(origin, dir mgl64.Vec3, maxDist float64, center mgl64.Vec3, radius float64) (float64, bool) {
	m := origin.Sub(center)
	c := m.Dot(m) - radius*radius
	if c <= 0 {
		return 0, true
	}
	bq := m.Dot(dir)
	if bq > 0 {
		return 0, false
	}
	disc := bq*bq - c
	if disc < 0 {
		return 0, false
	}
	t := -bq - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	if t > maxDist {
		return 0, false
	}
	return t, true
}

// RayGround intersects the segment with the ground plane from above.
func RayGround(origin, dir mgl64.Vec3, maxDist float64, g Ground) (float64, bool) {
	if !g.Enabled {
		return 0, false
	}
	h := origin.Z() - g.Z
	if h < 0 {
		return 0, true
	}
	if dir.Z() >= 0 {
		return 0, false
	}
	t := h / -dir.Z()
	if t > maxDist {
		return 0, false
	}
	return t, true
}

// ResolveGround keeps a sphere of the given radius above the ground plane,
// removing any velocity into it. It reports whether contact occurred and the
// sink rate that was removed.
func ResolveGround(b *Body, radius float64, g Ground) (float64, bool) {
	if !g.Enabled {
		return 0, false
	}
	floor := g.Z + radius
	if b.Position.Z() > floor {
		return 0, false
	}
	b.Position[2] = floor
	sink := 0.0
	if vz := b.Velocity.Z(); vz < 0 {
		sink = -vz
		b.Velocity[2] = 0
	}
	return sink, true
}
