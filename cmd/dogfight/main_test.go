package main

import (
	"testing"
	"time"

	"github.com/l1jgo/dogfight/internal/game"
	"github.com/l1jgo/dogfight/internal/persist"
	"github.com/stretchr/testify/assert"
)

func TestHistoryStats(t *testing.T) {
	finished := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	got := historyStats(
		map[string]int{"victory": 3, "defeat": 1},
		[]persist.MatchRecord{{Outcome: "victory", EnemiesDestroyed: 5, EnemiesSpawned: 5, FinishedAt: finished}},
	)
	assert.Equal(t, [][2]string{
		{"victory", "3"},
		{"defeat", "1"},
		{"in_progress", "0"},
		{"2026-03-14 09:30", "victory 5/5"},
	}, got)
}

func TestHistoryStats_Empty(t *testing.T) {
	got := historyStats(nil, nil)
	assert.Len(t, got, 3, "the tally always lists every outcome")
}

func TestKillRows(t *testing.T) {
	rows := killRows([]game.Kill{
		{Victim: "bandit", Instigator: "fighter", At: 1500 * time.Millisecond},
		{Victim: "fighter", Instigator: "ground", Player: true, At: 3 * time.Second},
	})
	assert.Equal(t, []persist.KillRow{
		{Victim: "bandit", Instigator: "fighter", AtSeconds: 1.5},
		{Victim: "fighter", Instigator: "ground", Player: true, AtSeconds: 3},
	}, rows)
}
