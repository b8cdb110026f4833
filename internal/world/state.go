package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/component"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/physics"
)

// State is the live arena: the ECS world plus every component store the
// systems share. Accessed only from the game loop goroutine, so no locks.
type State struct {
	ECS *ecs.World

	Bodies     *ecs.Store[physics.Body]
	Colliders  *ecs.Store[component.Collider]
	Combatants *ecs.Store[component.Combatant]
	Health     *ecs.Store[component.Health]
	Weapons    *ecs.Store[component.Weapon]
	Locks      *ecs.Store[component.TargetLock]
	Pilots     *ecs.Store[component.Pilot]
	Flights    *ecs.Store[component.FlightModel]
	Controls   *ecs.Store[component.Controls]
	Launchers  *ecs.Store[component.Launcher]
	Missiles   *ecs.Store[component.Missile]

	Ground physics.Ground
	Match  Match

	player ecs.EntityID
}

func NewState(ground physics.Ground) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	return &State{
		ECS:        w,
		Bodies:     ecs.NewRegisteredStore[physics.Body](r),
		Colliders:  ecs.NewRegisteredStore[component.Collider](r),
		Combatants: ecs.NewRegisteredStore[component.Combatant](r),
		Health:     ecs.NewRegisteredStore[component.Health](r),
		Weapons:    ecs.NewRegisteredStore[component.Weapon](r),
		Locks:      ecs.NewRegisteredStore[component.TargetLock](r),
		Pilots:     ecs.NewRegisteredStore[component.Pilot](r),
		Flights:    ecs.NewRegisteredStore[component.FlightModel](r),
		Controls:   ecs.NewRegisteredStore[component.Controls](r),
		Launchers:  ecs.NewRegisteredStore[component.Launcher](r),
		Missiles:   ecs.NewRegisteredStore[component.Missile](r),
		Ground:     ground,
	}
}

// SetPlayer marks id as the player-controlled combatant.
func (s *State) SetPlayer(id ecs.EntityID) { s.player = id }

// Player returns the player entity while it is alive.
func (s *State) Player() (ecs.EntityID, bool) {
	if !s.ECS.Alive(s.player) {
		return ecs.None, false
	}
	return s.player, true
}

// IsPlayer reports whether id is the player-controlled combatant.
func (s *State) IsPlayer(id ecs.EntityID) bool {
	return !id.IsZero() && id == s.player
}

// Resolve turns a weak reference into a live, not-yet-dying entity.
func (s *State) Resolve(id ecs.EntityID) (ecs.EntityID, bool) {
	if !s.ECS.Alive(id) || s.ECS.Pending(id) {
		return ecs.None, false
	}
	if h, ok := s.Health.Get(id); ok && h.Dead {
		return ecs.None, false
	}
	return id, true
}

// --- 射線與掃掠查詢 ---

// Hit is the first blocking contact of a ray query.
type Hit struct {
	Entity   ecs.EntityID // None when the ground was hit
	Ground   bool
	Point    mgl64.Vec3
	Distance float64
}

// RayCast returns the first blocking hit on the segment from start along dir
// (unit) up to maxDist. Entities in ignore, and entities already queued for
// destruction, are skipped. Ties go to the earliest collider in store order.
func (s *State) RayCast(start, dir mgl64.Vec3, maxDist float64, ignore ...ecs.EntityID) (Hit, bool) {
	return s.cast(start, dir, maxDist, 0, ignore)
}

// Sweep moves a sphere of the given radius from a to b and returns the first
// contact. A zero length sweep reports overlap at a.
func (s *State) Sweep(a, b mgl64.Vec3, radius float64, ignore ...ecs.EntityID) (Hit, bool) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return s.cast(a, physics.AxisForward, 0, radius, ignore)
	}
	return s.cast(a, d.Mul(1/l), l, radius, ignore)
}

func (s *State) cast(start, dir mgl64.Vec3, maxDist, inflate float64, ignore []ecs.EntityID) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	ecs.Each2(s.Colliders, s.Bodies, func(id ecs.EntityID, c *component.Collider, b *physics.Body) {
		if s.ECS.Pending(id) || contains(ignore, id) {
			return
		}
		d, ok := physics.RaySphere(start, dir, maxDist, b.Position, c.Radius+inflate)
		if ok && d < best.Distance {
			best = Hit{Entity: id, Distance: d}
			found = true
		}
	})
	ground := s.Ground
	ground.Z += inflate
	if d, ok := physics.RayGround(start, dir, maxDist, ground); ok && d < best.Distance {
		best = Hit{Ground: true, Distance: d}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	best.Point = start.Add(dir.Mul(best.Distance))
	return best, true
}

// Hostiles visits live combatants hostile to faction, in spawn order.
func (s *State) Hostiles(faction component.Faction, fn func(ecs.EntityID, *physics.Body)) {
	ecs.Each2(s.Combatants, s.Bodies, func(id ecs.EntityID, c *component.Combatant, b *physics.Body) {
		if !faction.Hostile(c.Faction) {
			return
		}
		if _, ok := s.Resolve(id); !ok {
			return
		}
		fn(id, b)
	})
}

func contains(ids []ecs.EntityID, id ecs.EntityID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
