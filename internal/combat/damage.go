package combat

import (
	"math"

	"github.com/l1jgo/dogfight/internal/component"
)

// ApplyDamage clamps health to [0, Max] after subtracting amount. Damage to
// a dead combatant and non-positive amounts are ignored. died is true only
// on the hit that brings health to zero.
func ApplyDamage(h *component.Health, amount float64) (applied float64, died bool) {
	if h == nil || h.Dead || h.Current <= 0 || amount <= 0 || math.IsNaN(amount) {
		return 0, false
	}
	before := h.Current
	h.Current = math.Max(0, math.Min(h.Max, h.Current-amount))
	if h.Current <= 0 {
		h.Dead = true
		died = true
	}
	return before - h.Current, died
}

// NewHealth returns a full health pool.
func NewHealth(max float64) component.Health {
	return component.Health{Current: max, Max: max}
}
