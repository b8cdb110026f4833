package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/combat"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	coresys "github.com/l1jgo/dogfight/internal/core/system"
	"github.com/l1jgo/dogfight/internal/core/timer"
	"github.com/l1jgo/dogfight/internal/physics"
	"github.com/l1jgo/dogfight/internal/world"
	"go.uber.org/zap/zaptest"
)

// harness wires the full system pipeline over an empty arena.
type harness struct {
	deps     Deps
	runner   *coresys.Runner
	damage   *DamageService
	missiles *MissileSystem
	match    *MatchSystem
	effects  *EffectsSink
	dt       time.Duration
}

func newHarness(t *testing.T, dt time.Duration) *harness {
	t.Helper()
	deps := Deps{
		World:  world.NewState(physics.Ground{Enabled: true}),
		Bus:    event.NewBus(),
		Clock:  timer.NewClock(),
		Timers: timer.NewQueue(),
		Log:    zaptest.NewLogger(t),
	}
	h := &harness{deps: deps, dt: dt}
	h.damage = NewDamageService(deps)
	h.match = NewMatchSystem(deps)
	h.missiles = NewMissileSystem(deps)
	h.effects = NewEffectsSink(deps.Bus, deps.Log)

	h.runner = coresys.NewRunner()
	h.runner.Register(NewClockSystem(deps.Clock))
	h.runner.Register(NewPlayerControlSystem(deps, h.missiles, nil))
	h.runner.Register(NewTimerSystem(deps.Clock, deps.Timers))
	h.runner.Register(NewEventDispatchSystem(deps.Bus))
	h.runner.Register(NewTargetingSystem(deps))
	h.runner.Register(NewFlightSystem(deps, h.damage))
	h.runner.Register(NewAISystem(deps))
	h.runner.Register(NewWeaponSystem(deps, h.damage))
	h.runner.Register(h.missiles)
	h.runner.Register(NewPhysicsSystem(deps, h.missiles))
	h.runner.Register(NewContactSystem(deps, h.missiles, h.damage))
	h.runner.Register(NewCleanupSystem(deps.World.ECS))
	return h
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.runner.Tick(h.dt)
	}
}

func (h *harness) now() time.Duration { return h.deps.Clock.Now() }

// airframe adds a combatant with a body, collider, health and gun.
func (h *harness) airframe(f component.Faction, pos mgl64.Vec3, yaw float64) ecs.EntityID {
	ws := h.deps.World
	id := ws.ECS.CreateEntity()
	ws.Bodies.Set(id, physics.NewBody(pos, mgl64.QuatRotate(mgl64.DegToRad(yaw), physics.AxisUp), 1))
	ws.Colliders.Set(id, &component.Collider{Radius: 500})
	ws.Combatants.Set(id, &component.Combatant{Name: f.String(), Faction: f})
	hp := combat.NewHealth(100)
	ws.Health.Set(id, &hp)
	ws.Weapons.Set(id, &component.Weapon{
		Interval:     100 * time.Millisecond,
		Range:        50000,
		Damage:       10,
		MuzzleOffset: 700,
	})
	return id
}

// player adds the player aircraft with a lock, controls and a launcher.
func (h *harness) player(pos mgl64.Vec3, yaw float64) ecs.EntityID {
	ws := h.deps.World
	id := h.airframe(component.FactionPlayer, pos, yaw)
	ws.Locks.Set(id, &component.TargetLock{})
	ws.Controls.Set(id, &component.Controls{})
	ws.Launchers.Set(id, &component.Launcher{
		Speed:              40000,
		MaxSpeed:           40000,
		HomingAcceleration: 80000,
		Damage:             100,
		Radius:             50,
		Lifetime:           10 * time.Second,
		MuzzleOffset:       800,
	})
	ws.SetPlayer(id)
	return id
}

// enemy adds an AI aircraft using the stock bandit tuning.
func (h *harness) enemy(pos mgl64.Vec3, yaw float64) ecs.EntityID {
	id := h.airframe(component.FactionEnemy, pos, yaw)
	h.deps.World.Pilots.Set(id, &component.Pilot{
		FlightForce:       5000,
		TurnSpeed:         2,
		AvoidanceDistance: 15000,
		MaxSpeed:          10000,
		EvasionDuration:   2 * time.Second,
		EvasionTurnRate:   480,
		FireCone:          0.9,
	})
	return id
}

func (h *harness) health(id ecs.EntityID) float64 {
	hp, ok := h.deps.World.Health.Get(id)
	if !ok {
		return -1
	}
	return hp.Current
}

func (h *harness) controls(id ecs.EntityID, c component.Controls) {
	ctl, _ := h.deps.World.Controls.Get(id)
	*ctl = c
}
