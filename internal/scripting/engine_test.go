package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNewEngine_MissingDir(t *testing.T) {
	e := newEngine(t, filepath.Join(t.TempDir(), "absent"))
	assert.False(t, e.Has("spawn_layout"))
	assert.False(t, e.Has("pilot_input"))
}

func TestNewEngine_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", "function (")
	_, err := NewEngine(dir, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestSpawnLayout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "match/layout.lua", `
function spawn_layout(ctx)
  local out = {}
  for i = 1, ctx.count do
    out[i] = { x = i * ctx.radius, y = 0, z = ctx.altitude, yaw = 90 }
  end
  return out
end
`)
	e := newEngine(t, dir)
	require.True(t, e.Has("spawn_layout"))

	pts, ok := e.SpawnLayout(SpawnContext{Count: 3, Radius: 100, Altitude: 5000})
	require.True(t, ok)
	require.Len(t, pts, 3)
	assert.Equal(t, 300.0, pts[2].X)
	assert.Equal(t, 5000.0, pts[0].Z)
	assert.Equal(t, 90.0, pts[1].Yaw)
}

func TestSpawnLayout_MissingFunction(t *testing.T) {
	e := newEngine(t, t.TempDir())
	_, ok := e.SpawnLayout(SpawnContext{Count: 3})
	assert.False(t, ok)
}

func TestSpawnLayout_RuntimeError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "layout.lua", `function spawn_layout(ctx) error("boom") end`)
	e := newEngine(t, dir)
	_, ok := e.SpawnLayout(SpawnContext{Count: 1})
	assert.False(t, ok)
}

func TestPilotInput(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "pilot/auto.lua", `
function pilot_input(v)
  local c = { throttle = 5, yaw = -0.5 }
  if v.lock ~= nil then
    c.fire = true
    c.pitch = v.lock.z > v.position.z and -1 or 1
  end
  return c
end
`)
	e := newEngine(t, dir)

	c, ok := e.PilotInput(system.PilotView{Now: time.Second})
	require.True(t, ok)
	assert.Equal(t, 1.0, c.Throttle, "axes are clamped")
	assert.Equal(t, -0.5, c.Yaw)
	assert.False(t, c.Fire)

	c, ok = e.PilotInput(system.PilotView{
		Position: mgl64.Vec3{0, 0, 100},
		HasLock:  true,
		LockPos:  mgl64.Vec3{0, 0, 500},
	})
	require.True(t, ok)
	assert.True(t, c.Fire)
	assert.Equal(t, -1.0, c.Pitch)
	assert.False(t, c.FireMissile)
}
