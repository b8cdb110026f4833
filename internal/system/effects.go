package system

import (
	"github.com/l1jgo/dogfight/internal/core/event"
	"go.uber.org/zap"
)

// EffectStats counts the best-effort effect notifications delivered so far.
type EffectStats struct {
	ShotsFired        int
	ShotImpacts       int
	MissilesLaunched  int
	MissileDetonation int
	MissilesExpired   int
	Deaths            int
}

// EffectsSink stands in for particle and sound spawning: it consumes the
// deferred effect events and logs them. Losing one never affects the fight.
type EffectsSink struct {
	log   *zap.Logger
	Stats EffectStats
}

func NewEffectsSink(bus *event.Bus, log *zap.Logger) *EffectsSink {
	s := &EffectsSink{log: log}
	event.Subscribe(bus, func(ev event.WeaponFired) {
		s.Stats.ShotsFired++
		s.log.Debug("muzzle flash", zap.Uint64("shooter", uint64(ev.Shooter)))
	})
	event.Subscribe(bus, func(ev event.ShotImpact) {
		s.Stats.ShotImpacts++
		s.log.Debug("shot impact",
			zap.Uint64("shooter", uint64(ev.Shooter)),
			zap.Uint64("hit", uint64(ev.Hit)),
			zap.Bool("damaged", ev.Damaged),
		)
	})
	event.Subscribe(bus, func(ev event.MissileLaunched) {
		s.Stats.MissilesLaunched++
	})
	event.Subscribe(bus, func(ev event.MissileDetonated) {
		s.Stats.MissileDetonation++
		s.log.Debug("explosion", zap.Uint64("missile", uint64(ev.Missile)), zap.Uint64("hit", uint64(ev.Hit)))
	})
	event.Subscribe(bus, func(ev event.MissileExpired) {
		s.Stats.MissilesExpired++
	})
	event.Subscribe(bus, func(ev event.DeathEffect) {
		s.Stats.Deaths++
		s.log.Debug("death effect", zap.Uint64("entity", uint64(ev.Entity)))
	})
	return s
}
