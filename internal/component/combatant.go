package component

// Faction separates the player from the enemies it locks onto.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	}
	return "neutral"
}

// Hostile reports whether an entity of faction f may target other.
func (f Faction) Hostile(other Faction) bool {
	return f != FactionNeutral && other != FactionNeutral && f != other
}

// Combatant tags an entity that takes part in the fight.
type Combatant struct {
	Name    string
	Faction Faction
}

// Collider is the sphere used for ray and sweep queries.
type Collider struct {
	Radius float64
}

// Health is bounded in [0, Max]. Dead latches the one-shot death.
// Pure data: all mutation goes through combat.ApplyDamage.
type Health struct {
	Current float64
	Max     float64
	Dead    bool
}
