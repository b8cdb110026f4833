package combat

import (
	"time"

	"github.com/l1jgo/dogfight/internal/component"
)

// Ready reports whether w may fire at now: it has never fired, or at least
// Interval has elapsed since the last discharge.
func Ready(w *component.Weapon, now time.Duration) bool {
	return !w.HasFired || now-w.LastFire >= w.Interval
}

// TryFire records a discharge at now if the weapon is ready.
func TryFire(w *component.Weapon, now time.Duration) bool {
	if !Ready(w, now) {
		return false
	}
	w.LastFire = now
	w.HasFired = true
	return true
}
