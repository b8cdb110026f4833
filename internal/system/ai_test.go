package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAI_EvadesOnceAndReturnsAfterDuration(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	pl := h.player(mgl64.Vec3{0, 0, 5000}, 0)
	e := h.enemy(mgl64.Vec3{100000, 0, 5000}, 0)
	p, _ := h.deps.World.Pilots.Get(e)

	h.step(1)
	require.True(t, h.damage.Apply(e, 10, pl))
	assert.Equal(t, component.AIEvading, p.State)
	assert.Equal(t, 100*time.Millisecond, p.EvadedAt)
	assert.Equal(t, 1, h.deps.Timers.Len())

	// More damage while evading neither resets nor extends the window.
	h.step(5)
	require.True(t, h.damage.Apply(e, 10, pl))
	assert.Equal(t, 100*time.Millisecond, p.EvadedAt)
	assert.Equal(t, 1, h.deps.Timers.Len())
	assert.Equal(t, 80.0, h.health(e))

	h.step(14)
	assert.Equal(t, 2000*time.Millisecond, h.now())
	assert.Equal(t, component.AIEvading, p.State)

	h.step(1)
	assert.Equal(t, component.AISeeking, p.State)
	assert.Zero(t, h.deps.Timers.Len())

	// A fresh hit starts a new window.
	h.damage.Apply(e, 10, pl)
	assert.Equal(t, component.AIEvading, p.State)
	assert.Equal(t, h.now(), p.EvadedAt)
}

func TestAI_EvasionSpinsAtTurnRate(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	h.player(mgl64.Vec3{0, 0, 5000}, 0)
	e := h.enemy(mgl64.Vec3{100000, 0, 5000}, 0)
	h.damage.Apply(e, 10, ecs.None)

	h.step(1)
	b, _ := h.deps.World.Bodies.Get(e)
	assert.InDelta(t, 48, b.Yaw(), 1e-6)
	assert.InDelta(t, 0, b.Forward().Z(), 1e-9, "spin stays about local up")
}

func TestAI_SeekingFiresWhenLinedUp(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	pl := h.player(mgl64.Vec3{0, 0, 5000}, 0)
	h.enemy(mgl64.Vec3{20000, 0, 5000}, 180)

	h.step(1)
	assert.Equal(t, 90.0, h.health(pl))
}

func TestAI_HitOnTheTickItLinesUpHoldsFire(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	pl := h.player(mgl64.Vec3{0, 0, 5000}, 0)
	e := h.enemy(mgl64.Vec3{20000, 0, 5000}, 180)
	h.controls(pl, component.Controls{Fire: true})

	h.step(1)
	p, _ := h.deps.World.Pilots.Get(e)
	assert.Equal(t, component.AIEvading, p.State)
	assert.Equal(t, 90.0, h.health(e))
	assert.Equal(t, 100.0, h.health(pl), "an evading pilot never fires")
}

func TestAI_EvadingNeverFires(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	pl := h.player(mgl64.Vec3{0, 0, 5000}, 0)
	e := h.enemy(mgl64.Vec3{20000, 0, 5000}, 180)
	h.damage.Apply(e, 10, ecs.None)

	h.step(15)
	assert.Equal(t, 100.0, h.health(pl))
}

func TestAI_NoPlayerOnlyThrusts(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	e := h.enemy(mgl64.Vec3{0, 0, 5000}, 0)

	h.step(10)
	b, _ := h.deps.World.Bodies.Get(e)
	assert.Greater(t, b.Velocity.X(), 0.0)
	assert.InDelta(t, 0, b.Velocity.Y(), 1e-9)
	assert.InDelta(t, 0, b.Velocity.Z(), 1e-9)
	assert.InDelta(t, 0, b.Yaw(), 1e-9)
}

func TestAI_SpeedClamped(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	e := h.enemy(mgl64.Vec3{0, 0, 5000}, 0)
	b, _ := h.deps.World.Bodies.Get(e)
	b.Velocity = mgl64.Vec3{50000, 0, 0}

	h.step(1)
	// One step of thrust on top of the clamp.
	assert.InDelta(t, 10000+5000*0.1, b.Speed(), 1e-6)
}

func TestAI_TurnsAwayInsideAvoidanceDistance(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	pl := h.player(mgl64.Vec3{0, 0, 5000}, 0)
	e := h.enemy(mgl64.Vec3{10000, 0, 5000}, 180)

	h.step(20)
	eb, _ := h.deps.World.Bodies.Get(e)
	pb, _ := h.deps.World.Bodies.Get(pl)
	toPlayer := physics.SafeNormal(pb.Position.Sub(eb.Position))
	assert.Less(t, eb.Forward().Dot(toPlayer), 0.0)
}

func TestAI_TimerCancelledWhenDestroyed(t *testing.T) {
	h := newHarness(t, 100*time.Millisecond)
	e := h.enemy(mgl64.Vec3{0, 0, 5000}, 0)
	h.damage.Apply(e, 10, ecs.None)
	require.Equal(t, 1, h.deps.Timers.Len())

	h.damage.Apply(e, 100, ecs.None)
	h.step(1)
	assert.False(t, h.deps.World.ECS.Alive(e))
	assert.Zero(t, h.deps.Timers.Len())
}
