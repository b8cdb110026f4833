// Package combat holds the pure combat rules: target scoring, damage
// clamping and weapon rate limiting. Systems apply them to world state.
package combat

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/physics"
)

// Candidate is a potential target as seen by an attacker.
type Candidate struct {
	ID       ecs.EntityID
	Position mgl64.Vec3
}

// Score rates a target at pos for an attacker at origin facing forward
// (unit). Targets on or behind the attacker's beam plane (dot <= 0) do not
// qualify. Higher is better: more directly ahead and/or closer.
func Score(origin, forward, pos mgl64.Vec3) (float64, bool) {
	offset := pos.Sub(origin)
	dir := physics.SafeNormal(offset)
	dot := forward.Dot(dir)
	if dot <= 0 {
		return 0, false
	}
	return dot / offset.Len(), true
}

// SelectTarget returns the best scoring candidate. On an exact score tie the
// first candidate in iteration order keeps the lock.
func SelectTarget(origin, forward mgl64.Vec3, candidates []Candidate) (Candidate, float64, bool) {
	var best Candidate
	bestScore := 0.0
	found := false
	for _, c := range candidates {
		s, ok := Score(origin, forward, c.Position)
		if !ok {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, bestScore, found
}
