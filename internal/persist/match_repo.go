package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchRecord is one finished (or interrupted) match.
type MatchRecord struct {
	ID               uuid.UUID
	ServerName       string
	Seed             uint64
	Outcome          string // "victory", "defeat", "in_progress"
	EnemiesSpawned   int
	EnemiesDestroyed int
	Ticks            uint64
	SimSeconds       float64
	StartedAt        time.Time
	FinishedAt       time.Time
}

// KillRow is one entry of a match's kill log.
type KillRow struct {
	Victim     string
	Instigator string
	Player     bool
	AtSeconds  float64
}

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Save writes the match and its kill log in a single transaction. A zero ID
// is replaced with a fresh one; the stored ID is returned.
func (r *MatchRepo) Save(ctx context.Context, m MatchRecord, kills []KillRow) (uuid.UUID, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("match begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO matches (match_id, server_name, seed, outcome, enemies_spawned,
		                      enemies_destroyed, ticks, sim_seconds, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ServerName, int64(m.Seed), m.Outcome, m.EnemiesSpawned,
		m.EnemiesDestroyed, int64(m.Ticks), m.SimSeconds, m.StartedAt, m.FinishedAt,
	); err != nil {
		return uuid.Nil, fmt.Errorf("match insert: %w", err)
	}

	for i, k := range kills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_kills (match_id, seq, victim, instigator, player, at_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, i, k.Victim, k.Instigator, k.Player, k.AtSeconds,
		); err != nil {
			return uuid.Nil, fmt.Errorf("kill insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("match commit: %w", err)
	}
	return m.ID, nil
}

// Recent loads the latest matches, newest first.
func (r *MatchRepo) Recent(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT match_id, server_name, seed, outcome, enemies_spawned, enemies_destroyed,
		        ticks, sim_seconds, started_at, finished_at
		 FROM matches ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var seed, ticks int64
		if err := rows.Scan(
			&m.ID, &m.ServerName, &seed, &m.Outcome, &m.EnemiesSpawned, &m.EnemiesDestroyed,
			&ticks, &m.SimSeconds, &m.StartedAt, &m.FinishedAt,
		); err != nil {
			return nil, err
		}
		m.Seed, m.Ticks = uint64(seed), uint64(ticks)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Tally counts stored matches per outcome.
func (r *MatchRepo) Tally(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT outcome, COUNT(*) FROM matches GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, rows.Err()
}
