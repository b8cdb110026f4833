package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aircraft.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultAircraftTable_Valid(t *testing.T) {
	assert.NoError(t, DefaultAircraftTable().Validate())
}

func TestLoadAircraftTable_OverridesKeepDefaults(t *testing.T) {
	p := writeTable(t, `
enemy:
  evasion_duration: 3s
  weapon:
    interval: 250ms
fighter:
  body:
    max_health: 150
`)
	tbl, err := LoadAircraftTable(p)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, tbl.Enemy.EvasionDuration)
	assert.Equal(t, 250*time.Millisecond, tbl.Enemy.Weapon.Interval)
	assert.Equal(t, 50000.0, tbl.Enemy.Weapon.Range, "untouched keys keep defaults")
	assert.Equal(t, 150.0, tbl.Fighter.Body.MaxHealth)
	assert.Equal(t, 15000.0, tbl.Fighter.Body.Mass)
	require.NotNil(t, tbl.Missile)
}

func TestLoadAircraftTable_NullMissileDisablesIt(t *testing.T) {
	tbl, err := LoadAircraftTable(writeTable(t, "missile: null\n"))
	require.NoError(t, err)
	assert.Nil(t, tbl.Missile)
}

func TestLoadAircraftTable_RejectsBadTuning(t *testing.T) {
	_, err := LoadAircraftTable(writeTable(t, "enemy:\n  max_speed: 0\n  evasion_duration: 0s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enemy.max_speed")
	assert.Contains(t, err.Error(), "enemy.evasion_duration")
}

func TestLoadAircraftTable_MissingFile(t *testing.T) {
	_, err := LoadAircraftTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
