package data

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnPoint places one enemy aircraft. Yaw is in degrees.
type SpawnPoint struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type spawnListFile struct {
	Spawns []SpawnPoint `yaml:"spawns"`
}

// LoadSpawnList loads a fixed enemy layout from a YAML file.
func LoadSpawnList(path string) ([]SpawnPoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}

// RingLayout scatters count points on a circle of radius around the origin
// at altitude, each at a random angle with a random heading.
func RingLayout(count int, radius, altitude float64, rng *rand.Rand) []SpawnPoint {
	out := make([]SpawnPoint, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		out = append(out, SpawnPoint{
			X:   math.Cos(angle) * radius,
			Y:   math.Sin(angle) * radius,
			Z:   altitude,
			Yaw: rng.Float64() * 360,
		})
	}
	return out
}
