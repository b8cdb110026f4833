package system

import (
	"github.com/l1jgo/dogfight/internal/core/ecs"
	"github.com/l1jgo/dogfight/internal/core/event"
	"github.com/l1jgo/dogfight/internal/world"
	"go.uber.org/zap"
)

// MatchSystem is the game mode. Each Died event fans out to exactly one of
// PlayerDied or EnemyDestroyed; the alive counter decides victory and the
// player's death ends and pauses the match.
type MatchSystem struct {
	deps Deps
}

func NewMatchSystem(deps Deps) *MatchSystem {
	m := &MatchSystem{deps: deps}
	event.Subscribe(deps.Bus, m.onDied)
	return m
}

// Begin records how many enemies the match started with.
func (m *MatchSystem) Begin(enemies int) {
	m.deps.World.Match = world.Match{
		EnemiesSpawned: enemies,
		AliveEnemies:   enemies,
	}
}

// 死亡事件只會分派為 PlayerDied 或 EnemyDestroyed 其中之一
func (m *MatchSystem) onDied(ev event.Died) {
	if ev.IsPlayer {
		m.playerDied(ev.Entity)
		return
	}
	m.enemyDestroyed(ev.Entity)
}

func (m *MatchSystem) enemyDestroyed(id ecs.EntityID) {
	match := &m.deps.World.Match
	match.AliveEnemies--
	match.EnemiesDestroyed++
	event.Publish(m.deps.Bus, event.EnemyDestroyed{Entity: id, Remaining: match.AliveEnemies})
	m.checkWinCondition()
}

func (m *MatchSystem) checkWinCondition() {
	match := &m.deps.World.Match
	if match.AliveEnemies > 0 || match.Over() {
		return
	}
	m.end(world.OutcomeVictory)
	m.deps.Log.Info("YOU WIN!", zap.Int("destroyed", match.EnemiesDestroyed))
}

func (m *MatchSystem) playerDied(id ecs.EntityID) {
	event.Publish(m.deps.Bus, event.PlayerDied{Entity: id})
	match := &m.deps.World.Match
	match.Paused = true
	if match.Over() {
		return
	}
	m.end(world.OutcomeDefeat)
	m.deps.Log.Info("game over", zap.Int("destroyed", match.EnemiesDestroyed))
}

func (m *MatchSystem) end(o world.Outcome) {
	match := &m.deps.World.Match
	match.Outcome = o
	match.EndedAt = m.deps.Clock.Now()
	event.Publish(m.deps.Bus, event.MatchEnded{Outcome: o.String(), Tick: m.deps.Clock.Tick()})
}
