package world

import "time"

// Outcome is the terminal state of a match.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	}
	return "in_progress"
}

// Match is the game mode's bookkeeping.
type Match struct {
	EnemiesSpawned   int
	AliveEnemies     int
	EnemiesDestroyed int
	Outcome          Outcome
	Paused           bool
	EndedAt          time.Duration
}

// Over reports whether the match reached an outcome.
func (m *Match) Over() bool { return m.Outcome != OutcomeNone }
