package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/dogfight/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// openTestDB connects to DOGFIGHT_TEST_DSN, or skips.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("DOGFIGHT_TEST_DSN")
	if dsn == "" {
		t.Skip("DOGFIGHT_TEST_DSN not set")
	}
	ctx := context.Background()
	cfg := config.Defaults().Database
	cfg.Enabled, cfg.DSN = true, dsn

	db, err := NewDB(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	v, err := RunMigrations(ctx, db.Pool, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.GreaterOrEqual(t, v, int64(1))
	return db
}

func TestMatchRepo_SaveAndRecent(t *testing.T) {
	db := openTestDB(t)
	repo := NewMatchRepo(db)
	ctx := context.Background()

	start := time.Now().UTC().Truncate(time.Microsecond)
	id, err := repo.Save(ctx, MatchRecord{
		ServerName:       "test",
		Seed:             42,
		Outcome:          "victory",
		EnemiesSpawned:   2,
		EnemiesDestroyed: 2,
		Ticks:            600,
		SimSeconds:       10,
		StartedAt:        start,
		FinishedAt:       start.Add(10 * time.Second),
	}, []KillRow{
		{Victim: "bandit", Instigator: "fighter", AtSeconds: 3.5},
		{Victim: "bandit", Instigator: "fighter", AtSeconds: 9.0},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	recent, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	var found bool
	for _, m := range recent {
		if m.ID == id {
			found = true
			assert.Equal(t, uint64(42), m.Seed)
			assert.Equal(t, "victory", m.Outcome)
			assert.Equal(t, uint64(600), m.Ticks)
		}
	}
	assert.True(t, found, "saved match listed")

	tally, err := repo.Tally(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, tally["victory"], 1)
}

func TestNewDB_BadDSN(t *testing.T) {
	cfg := config.Defaults().Database
	cfg.DSN = "://not a dsn"
	_, err := NewDB(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
