package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/data"
	"github.com/l1jgo/dogfight/internal/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for match scripting.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory:
// the top level first, then the match and pilot subdirectories.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, dir := range []string{scriptsDir, filepath.Join(scriptsDir, "match"), filepath.Join(scriptsDir, "pilot")} {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts %s: %w", dir, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// --- Spawn Layout Bridge ---

// SpawnContext is handed to spawn_layout.
type SpawnContext struct {
	Count    int
	Radius   float64
	Altitude float64
	Seed     uint64
}

// SpawnLayout calls the Lua spawn_layout function. It reports false when the
// function is missing or fails, leaving the caller to use its own layout.
func (e *Engine) SpawnLayout(ctx SpawnContext) ([]data.SpawnPoint, bool) {
	fn := e.vm.GetGlobal("spawn_layout")
	if fn == lua.LNil {
		return nil, false
	}

	t := e.vm.NewTable()
	t.RawSetString("count", lua.LNumber(ctx.Count))
	t.RawSetString("radius", lua.LNumber(ctx.Radius))
	t.RawSetString("altitude", lua.LNumber(ctx.Altitude))
	t.RawSetString("seed", lua.LNumber(ctx.Seed))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua spawn_layout error", zap.Error(err))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua spawn_layout must return a table")
		return nil, false
	}
	n := rt.Len()
	out := make([]data.SpawnPoint, 0, n)
	for i := 1; i <= n; i++ {
		st, ok := rt.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		out = append(out, data.SpawnPoint{
			X:   float64(lua.LVAsNumber(st.RawGetString("x"))),
			Y:   float64(lua.LVAsNumber(st.RawGetString("y"))),
			Z:   float64(lua.LVAsNumber(st.RawGetString("z"))),
			Yaw: float64(lua.LVAsNumber(st.RawGetString("yaw"))),
		})
	}
	return out, true
}

// --- Pilot Input Bridge ---

// PilotInput calls the Lua pilot_input function with the player's view of
// the fight. It reports false when the function is missing or fails.
func (e *Engine) PilotInput(v system.PilotView) (component.Controls, bool) {
	fn := e.vm.GetGlobal("pilot_input")
	if fn == lua.LNil {
		return component.Controls{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("now", lua.LNumber(v.Now.Seconds()))
	t.RawSetString("position", e.vec(v.Position[0], v.Position[1], v.Position[2]))
	t.RawSetString("forward", e.vec(v.Forward[0], v.Forward[1], v.Forward[2]))
	t.RawSetString("right", e.vec(v.Right[0], v.Right[1], v.Right[2]))
	t.RawSetString("up", e.vec(v.Up[0], v.Up[1], v.Up[2]))
	t.RawSetString("velocity", e.vec(v.Velocity[0], v.Velocity[1], v.Velocity[2]))
	t.RawSetString("throttle", lua.LNumber(v.Throttle))
	t.RawSetString("airspeed", lua.LNumber(v.Airspeed))
	t.RawSetString("altitude", lua.LNumber(v.Altitude))
	t.RawSetString("on_ground", lua.LBool(v.OnGround))
	t.RawSetString("health", lua.LNumber(v.Health))
	t.RawSetString("remaining", lua.LNumber(v.Remaining))
	if v.HasLock {
		t.RawSetString("lock", e.vec(v.LockPos[0], v.LockPos[1], v.LockPos[2]))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua pilot_input error", zap.Error(err))
		return component.Controls{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return component.Controls{}, false
	}
	return component.Controls{
		Throttle:    axis(rt.RawGetString("throttle")),
		Pitch:       axis(rt.RawGetString("pitch")),
		Roll:        axis(rt.RawGetString("roll")),
		Yaw:         axis(rt.RawGetString("yaw")),
		GroundSteer: axis(rt.RawGetString("ground_steer")),
		Fire:        lua.LVAsBool(rt.RawGetString("fire")),
		FireMissile: lua.LVAsBool(rt.RawGetString("fire_missile")),
	}, true
}

// --- Lua helpers ---

func (e *Engine) vec(x, y, z float64) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(x))
	t.RawSetString("y", lua.LNumber(y))
	t.RawSetString("z", lua.LNumber(z))
	return t
}

// axis clamps a script-provided control axis to [-1, 1].
func axis(v lua.LValue) float64 {
	f := float64(lua.LVAsNumber(v))
	switch {
	case f > 1:
		return 1
	case f < -1:
		return -1
	}
	return f
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
