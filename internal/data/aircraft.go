package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BodySpec is the rigid body and damage model shared by all aircraft.
type BodySpec struct {
	Mass           float64 `yaml:"mass"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Radius         float64 `yaml:"radius"`
	MaxHealth      float64 `yaml:"max_health"`
}

// WeaponSpec describes a hitscan gun.
type WeaponSpec struct {
	Interval     time.Duration `yaml:"interval"`
	Range        float64       `yaml:"range"`
	Damage       float64       `yaml:"damage"`
	MuzzleOffset float64       `yaml:"muzzle_offset"`
}

// FighterSpec is the player-flown aircraft.
type FighterSpec struct {
	Name            string     `yaml:"name"`
	Body            BodySpec   `yaml:"body"`
	Weapon          WeaponSpec `yaml:"weapon"`
	MaxThrust       float64    `yaml:"max_thrust"`
	ThrottleRate    float64    `yaml:"throttle_rate"`
	PitchRate       float64    `yaml:"pitch_rate"`
	RollRate        float64    `yaml:"roll_rate"`
	YawRate         float64    `yaml:"yaw_rate"`
	GroundSteerRate float64    `yaml:"ground_steer_rate"`
	Lift            float64    `yaml:"lift"`
	Drag            float64    `yaml:"drag"`
	GroundProbe     float64    `yaml:"ground_probe"`
	CrashSpeed      float64    `yaml:"crash_speed"`
	CrashDamage     float64    `yaml:"crash_damage"`
	Missiles        bool       `yaml:"missiles"`
}

// EnemySpec is the AI-flown aircraft.
type EnemySpec struct {
	Name              string        `yaml:"name"`
	Body              BodySpec      `yaml:"body"`
	Weapon            WeaponSpec    `yaml:"weapon"`
	FlightForce       float64       `yaml:"flight_force"`
	TurnSpeed         float64       `yaml:"turn_speed"`
	AvoidanceDistance float64       `yaml:"avoidance_distance"`
	MaxSpeed          float64       `yaml:"max_speed"`
	EvasionDuration   time.Duration `yaml:"evasion_duration"`
	EvasionTurnRate   float64       `yaml:"evasion_turn_rate"`
	FireCone          float64       `yaml:"fire_cone"`
}

// MissileSpec is the homing missile fired by the player.
type MissileSpec struct {
	Speed              float64       `yaml:"speed"`
	MaxSpeed           float64       `yaml:"max_speed"`
	HomingAcceleration float64       `yaml:"homing_acceleration"`
	Damage             float64       `yaml:"damage"`
	Radius             float64       `yaml:"radius"`
	Lifetime           time.Duration `yaml:"lifetime"`
	MuzzleOffset       float64       `yaml:"muzzle_offset"`
}

// AircraftTable holds every aircraft template.
type AircraftTable struct {
	Fighter FighterSpec  `yaml:"fighter"`
	Enemy   EnemySpec    `yaml:"enemy"`
	Missile *MissileSpec `yaml:"missile"`
}

// DefaultAircraftTable returns the stock tuning. World units are
// centimetres, as in the source level data.
func DefaultAircraftTable() *AircraftTable {
	return &AircraftTable{
		Fighter: FighterSpec{
			Name: "fighter",
			Body: BodySpec{
				Mass:           15000,
				LinearDamping:  0.1,
				AngularDamping: 0.5,
				Radius:         600,
				MaxHealth:      100,
			},
			Weapon: WeaponSpec{
				Interval:     100 * time.Millisecond,
				Range:        50000,
				Damage:       10,
				MuzzleOffset: 700,
			},
			MaxThrust:       100000000,
			ThrottleRate:    0.5,
			PitchRate:       30,
			RollRate:        50,
			YawRate:         10,
			GroundSteerRate: 80,
			Lift:            0.1,
			Drag:            0.005,
			GroundProbe:     300,
			CrashSpeed:      500,
			CrashDamage:     100,
			Missiles:        true,
		},
		Enemy: EnemySpec{
			Name: "bandit",
			Body: BodySpec{
				Mass:      1,
				Radius:    500,
				MaxHealth: 100,
			},
			Weapon: WeaponSpec{
				Interval:     200 * time.Millisecond,
				Range:        50000,
				Damage:       10,
				MuzzleOffset: 600,
			},
			FlightForce:       5000,
			TurnSpeed:         2,
			AvoidanceDistance: 15000,
			MaxSpeed:          10000,
			EvasionDuration:   2 * time.Second,
			EvasionTurnRate:   480,
			FireCone:          0.9,
		},
		Missile: &MissileSpec{
			Speed:              40000,
			MaxSpeed:           40000,
			HomingAcceleration: 80000,
			Damage:             100,
			Radius:             50,
			Lifetime:           10 * time.Second,
			MuzzleOffset:       800,
		},
	}
}

// LoadAircraftTable decodes a YAML file over the stock tuning. Keys absent
// from the file keep their defaults. A `missile: null` entry removes the
// missile template, which disables missile fire.
func LoadAircraftTable(path string) (*AircraftTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aircraft table: %w", err)
	}
	t := DefaultAircraftTable()
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse aircraft table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("aircraft table %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects tuning the simulation cannot run with.
func (t *AircraftTable) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	check("fighter.body.mass", t.Fighter.Body.Mass)
	check("fighter.body.max_health", t.Fighter.Body.MaxHealth)
	check("fighter.body.radius", t.Fighter.Body.Radius)
	check("enemy.body.mass", t.Enemy.Body.Mass)
	check("enemy.body.max_health", t.Enemy.Body.MaxHealth)
	check("enemy.body.radius", t.Enemy.Body.Radius)
	check("enemy.max_speed", t.Enemy.MaxSpeed)
	if t.Enemy.EvasionDuration <= 0 {
		errs = append(errs, fmt.Errorf("enemy.evasion_duration must be positive, got %s", t.Enemy.EvasionDuration))
	}
	if t.Fighter.Weapon.Interval < 0 || t.Enemy.Weapon.Interval < 0 {
		errs = append(errs, errors.New("weapon.interval must not be negative"))
	}
	if m := t.Missile; m != nil {
		check("missile.max_speed", m.MaxSpeed)
		check("missile.radius", m.Radius)
		if m.Lifetime <= 0 {
			errs = append(errs, fmt.Errorf("missile.lifetime must be positive, got %s", m.Lifetime))
		}
	}
	return errors.Join(errs...)
}
