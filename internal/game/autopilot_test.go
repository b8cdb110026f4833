package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/physics"
	"github.com/l1jgo/dogfight/internal/system"
	"github.com/stretchr/testify/assert"
)

func levelView() system.PilotView {
	return system.PilotView{
		Forward: physics.AxisForward,
		Right:   physics.AxisRight,
		Up:      physics.AxisUp,
	}
}

func TestAutopilot_SearchesWithoutLock(t *testing.T) {
	a := NewAutopilot(time.Second)
	c := a.Controls(levelView())
	assert.Equal(t, 1.0, c.Throttle)
	assert.Equal(t, 1.0, c.Yaw)
	assert.False(t, c.Fire)
	assert.False(t, c.FireMissile)
}

func TestAutopilot_SteersOntoLock(t *testing.T) {
	a := NewAutopilot(time.Second)
	v := levelView()
	v.HasLock = true
	v.LockPos = mgl64.Vec3{1000, 1000, 1000}

	c := a.Controls(v)
	assert.Less(t, c.Pitch, 0.0, "target above: nose up")
	assert.Greater(t, c.Yaw, 0.0, "target right: yaw right")
	assert.False(t, c.Fire, "not lined up")

	v.LockPos = mgl64.Vec3{10000, 0, 0}
	c = a.Controls(v)
	assert.True(t, c.Fire)
}

func TestAutopilot_MissileEdges(t *testing.T) {
	a := NewAutopilot(time.Second)
	v := levelView()
	v.HasLock = true
	v.LockPos = mgl64.Vec3{10000, 0, 0}

	assert.True(t, a.Controls(v).FireMissile, "first press")
	v.Now = 100 * time.Millisecond
	assert.False(t, a.Controls(v).FireMissile, "release")
	v.Now = 200 * time.Millisecond
	assert.False(t, a.Controls(v).FireMissile, "interval not elapsed")
	v.Now = time.Second
	assert.True(t, a.Controls(v).FireMissile)
}

func TestAutopilot_RollsWingsLevel(t *testing.T) {
	a := NewAutopilot(time.Second)
	v := levelView()
	q := mgl64.QuatRotate(mgl64.DegToRad(30), physics.AxisForward)
	v.Right, v.Up = q.Rotate(physics.AxisRight), q.Rotate(physics.AxisUp)
	c := a.Controls(v)
	assert.Less(t, c.Roll, 0.0)
}
