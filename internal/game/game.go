package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/config"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/core/timer"
	"github.com/l1jgo/dogfight/internal/data"
	"github.com/l1jgo/dogfight/internal/physics"
	"github.com/l1jgo/dogfight/internal/scripting"
	"github.com/l1jgo/dogfight/internal/system"
	"github.com/l1jgo/dogfight/internal/world"
	"go.uber.org/zap"
)

// Options configures a Game. Config and Aircraft fall back to the built-in
// defaults when nil.
type Options struct {
	Config   *config.Config
	Aircraft *data.AircraftTable
	Log      *zap.Logger

	// Spawns is a fixed enemy layout. When empty the Lua spawn_layout hook
	// is tried, then the random ring.
	Spawns  []data.SpawnPoint
	Scripts *scripting.Engine

	// Autopilot hands the player aircraft to pilot_input, or to the Go
	// autopilot when no script defines it. Otherwise the caller drives the
	// player through SetControls.
	Autopilot bool
}

// Kill is one entry of the match's kill log.
type Kill struct {
	Victim     string
	Instigator string
	Player     bool
	At         time.Duration
}

// Game owns one match: the world, the event bus, the clock, and the systems
// that run over them in phase order.
type Game struct {
	opts Options
	log  *zap.Logger
	seed uint64
	rng  *rand.Rand

	world  *world.State
	bus    *event.Bus
	clock  *timer.Clock
	timers *timer.Queue
	runner *coresys.Runner

	damage   *system.DamageService
	missiles *system.MissileSystem
	match    *system.MatchSystem
	effects  *system.EffectsSink

	kills    []Kill
	restarts int
}

// New builds a game and runs BeginPlay.
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		opts.Config = config.Defaults()
	}
	if opts.Aircraft == nil {
		opts.Aircraft = data.DefaultAircraftTable()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if err := opts.Aircraft.Validate(); err != nil {
		return nil, fmt.Errorf("aircraft table: %w", err)
	}

	seed := uint64(opts.Config.Simulation.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := &Game{
		opts: opts,
		log:  opts.Log,
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	g.build()
	return g, nil
}

// build wires a fresh world and every system, then spawns the combatants.
func (g *Game) build() {
	cfg := g.opts.Config
	g.world = world.NewState(physics.Ground{
		Enabled: cfg.Physics.GroundEnabled,
		Z:       cfg.Physics.GroundAltitude,
	})
	g.bus = event.NewBus()
	g.clock = timer.NewClock()
	g.timers = timer.NewQueue()
	g.kills = g.kills[:0]

	deps := system.Deps{
		World:  g.world,
		Bus:    g.bus,
		Clock:  g.clock,
		Timers: g.timers,
		Log:    g.log,
	}

	g.damage = system.NewDamageService(deps)
	g.match = system.NewMatchSystem(deps)
	g.missiles = system.NewMissileSystem(deps)
	g.effects = system.NewEffectsSink(g.bus, g.log)
	event.Subscribe(g.bus, g.recordKill)

	// Registration order within a phase is execution order.
	g.runner = coresys.NewRunner()
	g.runner.Register(system.NewClockSystem(g.clock))
	g.runner.Register(system.NewPlayerControlSystem(deps, g.missiles, g.controlSource()))
	g.runner.Register(system.NewTimerSystem(g.clock, g.timers))
	g.runner.Register(system.NewEventDispatchSystem(g.bus))
	g.runner.Register(system.NewTargetingSystem(deps))
	g.runner.Register(system.NewFlightSystem(deps, g.damage))
	g.runner.Register(system.NewAISystem(deps))
	g.runner.Register(system.NewWeaponSystem(deps, g.damage))
	g.runner.Register(g.missiles)
	g.runner.Register(system.NewPhysicsSystem(deps, g.missiles))
	g.runner.Register(system.NewContactSystem(deps, g.missiles, g.damage))
	g.runner.Register(system.NewCleanupSystem(g.world.ECS))
	g.log.Debug("systems registered", zap.Int("systems", g.runner.Len()))

	g.beginPlay()
}

func (g *Game) controlSource() system.ControlSource {
	if !g.opts.Autopilot {
		return nil
	}
	auto := NewAutopilot(3 * time.Second)
	if g.opts.Scripts != nil && g.opts.Scripts.Has("pilot_input") {
		return &scriptedPilot{engine: g.opts.Scripts, fallback: auto}
	}
	return auto
}

// --- Spawning ---

func (g *Game) beginPlay() {
	g.spawnPlayer()
	layout := g.layout()
	for _, sp := range layout {
		g.SpawnEnemy(mgl64.Vec3{sp.X, sp.Y, sp.Z}, sp.Yaw)
	}
	g.match.Begin(len(layout))
	g.log.Info("match started",
		zap.Uint64("seed", g.seed),
		zap.Int("enemies", len(layout)),
		zap.Int("restarts", g.restarts),
	)
}

// layout picks the enemy spawn points: fixed list, then script, then ring.
func (g *Game) layout() []data.SpawnPoint {
	mc := g.opts.Config.Match
	if len(g.opts.Spawns) > 0 {
		return g.opts.Spawns
	}
	if g.opts.Scripts != nil {
		pts, ok := g.opts.Scripts.SpawnLayout(scripting.SpawnContext{
			Count:    mc.EnemyCount,
			Radius:   mc.SpawnRadius,
			Altitude: mc.SpawnAltitude,
			Seed:     g.seed,
		})
		if ok {
			return pts
		}
	}
	return data.RingLayout(mc.EnemyCount, mc.SpawnRadius, mc.SpawnAltitude, g.rng)
}

func (g *Game) spawnPlayer() ecs.EntityID {
	spec := g.opts.Aircraft.Fighter
	mc := g.opts.Config.Match
	ws := g.world

	id := ws.ECS.CreateEntity()
	pos := mgl64.Vec3{mc.PlayerStart[0], mc.PlayerStart[1], mc.PlayerStart[2]}
	g.addAirframe(id, pos, mc.PlayerYaw, spec.Body)
	ws.Combatants.Set(id, &component.Combatant{Name: spec.Name, Faction: component.FactionPlayer})
	ws.Weapons.Set(id, newWeapon(spec.Weapon))
	ws.Locks.Set(id, &component.TargetLock{})
	ws.Controls.Set(id, &component.Controls{})
	ws.Flights.Set(id, &component.FlightModel{
		MaxThrust:       spec.MaxThrust,
		ThrottleRate:    spec.ThrottleRate,
		PitchRate:       spec.PitchRate,
		RollRate:        spec.RollRate,
		YawRate:         spec.YawRate,
		GroundSteerRate: spec.GroundSteerRate,
		Lift:            spec.Lift,
		Drag:            spec.Drag,
		GroundProbe:     spec.GroundProbe,
		CrashSpeed:      spec.CrashSpeed,
		CrashDamage:     spec.CrashDamage,
	})
	if m := g.opts.Aircraft.Missile; spec.Missiles && m != nil {
		ws.Launchers.Set(id, &component.Launcher{
			Speed:              m.Speed,
			MaxSpeed:           m.MaxSpeed,
			HomingAcceleration: m.HomingAcceleration,
			Damage:             m.Damage,
			Radius:             m.Radius,
			Lifetime:           m.Lifetime,
			MuzzleOffset:       m.MuzzleOffset,
		})
	}
	ws.SetPlayer(id)
	return id
}

// SpawnEnemy adds one AI aircraft at pos heading yaw degrees.
func (g *Game) SpawnEnemy(pos mgl64.Vec3, yaw float64) ecs.EntityID {
	spec := g.opts.Aircraft.Enemy
	ws := g.world

	id := ws.ECS.CreateEntity()
	g.addAirframe(id, pos, yaw, spec.Body)
	ws.Combatants.Set(id, &component.Combatant{Name: spec.Name, Faction: component.FactionEnemy})
	ws.Weapons.Set(id, newWeapon(spec.Weapon))
	ws.Pilots.Set(id, &component.Pilot{
		State:             component.AISeeking,
		FlightForce:       spec.FlightForce,
		TurnSpeed:         spec.TurnSpeed,
		AvoidanceDistance: spec.AvoidanceDistance,
		MaxSpeed:          spec.MaxSpeed,
		EvasionDuration:   spec.EvasionDuration,
		EvasionTurnRate:   spec.EvasionTurnRate,
		FireCone:          spec.FireCone,
	})
	return id
}

func (g *Game) addAirframe(id ecs.EntityID, pos mgl64.Vec3, yaw float64, spec data.BodySpec) {
	ws := g.world
	b := physics.NewBody(pos, mgl64.QuatRotate(mgl64.DegToRad(yaw), physics.AxisUp), spec.Mass)
	b.LinearDamping = spec.LinearDamping
	b.AngularDamping = spec.AngularDamping
	ws.Bodies.Set(id, b)
	ws.Colliders.Set(id, &component.Collider{Radius: spec.Radius})
	h := combat.NewHealth(spec.MaxHealth)
	ws.Health.Set(id, &h)
}

func newWeapon(spec data.WeaponSpec) *component.Weapon {
	return &component.Weapon{
		Interval:     spec.Interval,
		Range:        spec.Range,
		Damage:       spec.Damage,
		MuzzleOffset: spec.MuzzleOffset,
	}
}

// --- Kill log ---

func (g *Game) recordKill(ev event.Died) {
	k := Kill{Victim: g.name(ev.Entity), Instigator: "ground", Player: ev.IsPlayer, At: g.clock.Now()}
	if !ev.Instigator.IsZero() {
		k.Instigator = g.name(ev.Instigator)
	}
	g.kills = append(g.kills, k)
}

func (g *Game) name(id ecs.EntityID) string {
	if c, ok := g.world.Combatants.Get(id); ok {
		return c.Name
	}
	return fmt.Sprintf("entity-%d", id.Index())
}

// --- Loop control & accessors ---

// Step advances the simulation by one fixed tick. It reports false, doing
// nothing, once the match is paused.
func (g *Game) Step(dt time.Duration) bool {
	if g.world.Match.Paused {
		return false
	}
	g.runner.Tick(dt)
	return true
}

// Restart tears the world down and begins a new match.
func (g *Game) Restart() {
	g.restarts++
	g.build()
}

// SetControls replaces the player's input for the next tick. Has no effect
// while the autopilot owns the aircraft.
func (g *Game) SetControls(c component.Controls) {
	id, ok := g.world.Player()
	if !ok {
		return
	}
	if ctl, ok := g.world.Controls.Get(id); ok {
		*ctl = c
	}
}

// Player returns the live player entity.
func (g *Game) Player() (ecs.EntityID, bool) { return g.world.Player() }

// Telemetry returns the player's flight model readout.
func (g *Game) Telemetry() (component.FlightModel, bool) {
	id, ok := g.world.Player()
	if !ok {
		return component.FlightModel{}, false
	}
	fm, ok := g.world.Flights.Get(id)
	if !ok {
		return component.FlightModel{}, false
	}
	return *fm, true
}

func (g *Game) World() *world.State { return g.world }
func (g *Game) Bus() *event.Bus { return g.bus }
func (g *Game) Now() time.Duration { return g.clock.Now() }
func (g *Game) Ticks() uint64 { return g.clock.Tick() }
func (g *Game) Match() world.Match { return g.world.Match }
func (g *Game) Outcome() world.Outcome { return g.world.Match.Outcome }
func (g *Game) Seed() uint64 { return g.seed }
func (g *Game) Stats() system.EffectStats { return g.effects.Stats }
func (g *Game) Damage() *system.DamageService { return g.damage }

// Kills returns a copy of the kill log.
func (g *Game) Kills() []Kill {
	out := make([]Kill, len(g.kills))
	copy(out, g.kills)
	return out
}
