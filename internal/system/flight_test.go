package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) flyer(pos mgl64.Vec3) (ecs.EntityID, *component.FlightModel) {
	id := h.player(pos, 0)
	fm := &component.FlightModel{
		MaxThrust:    1000,
		ThrottleRate: 0.5,
		GroundProbe:  300,
		CrashSpeed:   500,
		CrashDamage:  100,
	}
	h.deps.World.Flights.Set(id, fm)
	return id, fm
}

func TestFlight_ThrottleIntegratesAndClamps(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 5000})

	h.controls(id, component.Controls{Throttle: 1})
	h.step(10)
	assert.InDelta(t, 0.5, fm.Throttle, 1e-9)
	h.step(20)
	assert.Equal(t, 1.0, fm.Throttle)

	h.controls(id, component.Controls{Throttle: -1})
	h.step(40)
	assert.Equal(t, 0.0, fm.Throttle)
}

func TestFlight_ThrustAlongNose(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 5000})
	fm.Throttle = 1

	h.step(1)
	b, _ := h.deps.World.Bodies.Get(id)
	assert.InDelta(t, 100, b.Velocity.X(), 1e-9)
	assert.InDelta(t, 0, b.Velocity.Y(), 1e-9)
}

func TestFlight_Telemetry(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 5000})
	b, _ := h.deps.World.Bodies.Get(id)
	b.Velocity = mgl64.Vec3{10000, 0, 0}

	h.step(1)
	assert.InDelta(t, 360, fm.Airspeed, 1e-9)
	assert.InDelta(t, 50, fm.Altitude, 1e-9)
	assert.False(t, fm.OnGround)
}

func TestFlight_RateTorques(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 5000})
	fm.YawRate = 10

	h.controls(id, component.Controls{Yaw: 1})
	h.step(1)
	b, _ := h.deps.World.Bodies.Get(id)
	assert.Greater(t, b.Yaw(), 0.0, "positive yaw turns right")
}

func TestFlight_HardLandingCrashes(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 1000})
	b, _ := h.deps.World.Bodies.Get(id)
	b.Velocity = mgl64.Vec3{0, 0, -6000}

	log := watchDeaths(h)

	h.step(4)
	assert.Equal(t, 100.0, h.health(id))
	h.step(1)
	assert.True(t, fm.OnGround)
	require.Len(t, log.died, 1)
	assert.True(t, log.died[0].IsPlayer)
	assert.True(t, log.died[0].Instigator.IsZero(), "the ground did it")
	assert.False(t, h.deps.World.ECS.Alive(id))
}

func TestFlight_DiveThroughProbeInOneStepCrashes(t *testing.T) {
	h := newHarness(t, time.Second/60)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 1400})
	b, _ := h.deps.World.Bodies.Get(id)
	b.Velocity = mgl64.Vec3{0, 0, -30000}

	log := watchDeaths(h)

	h.step(5)
	assert.True(t, fm.OnGround)
	require.Len(t, log.died, 1, "a 1080 km/h impact is a crash")
	assert.True(t, log.died[0].IsPlayer)
	assert.False(t, h.deps.World.ECS.Alive(id))
}

func TestFlight_SoftLandingSurvives(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)
	id, fm := h.flyer(mgl64.Vec3{0, 0, 1000})
	b, _ := h.deps.World.Bodies.Get(id)
	b.Velocity = mgl64.Vec3{0, 0, -300}

	h.step(200)
	assert.True(t, fm.OnGround)
	assert.Equal(t, 100.0, h.health(id))
}
