package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/game"
)

// chdir moves into dir for the rest of the test, so no stray .env is read.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "CACHE_BACKEND", "CACHE_LOAD_TIMEOUT", "LADDER_RULES_FILE", "MIN_FREQUENCY"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "dir", c.CacheBackend)
	assert.Equal(t, 10*time.Second, c.CacheLoadTimeout)
	assert.Equal(t, 2, c.MinFrequency)
	assert.Equal(t, game.DefaultRules(), c.Rules)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("MIN_FREQUENCY", "5")
	t.Setenv("PAIR_TARGET", "oops")
	t.Setenv("CACHE_LOAD_TIMEOUT", "3")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("LADDER_RULES_FILE", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 5, c.MinFrequency)
	assert.Zero(t, c.PairTarget)
	assert.Equal(t, 3*time.Second, c.CacheLoadTimeout)
	assert.Equal(t, 90*time.Minute, c.SessionTTL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv never overrides a variable that is already set, even to ""
	t.Setenv("DAILY_SALT", "")
	require.NoError(t, os.Unsetenv("DAILY_SALT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DAILY_SALT=from-dotenv\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", c.DailySalt)
}

func TestLoadRules_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  hard: {length: 7, reward: 80}
band: {min: 3, max: 5}
time_bonuses:
  - {within: 30s, bonus: 50}
hint_step: 5
`), 0o600))

	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, game.Tier{Length: 7, Reward: 80}, r.Tiers[game.Hard])
	assert.Equal(t, game.Tier{Length: 4, Reward: 30}, r.Tiers[game.Easy])
	assert.Equal(t, 3, r.Band.Min)
	assert.Equal(t, []game.TimeBonus{{Within: 30 * time.Second, Bonus: 50}}, r.TimeBonuses)
	assert.Equal(t, 5, r.HintStep)
	assert.Equal(t, 10, r.HintStart)
	assert.Equal(t, 100, r.StreakBonus)
}

func TestLoadRules_Errors(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("band: {min: 6, max: 2}\n"), 0o600))
	_, err = LoadRules(bad)
	assert.ErrorIs(t, err, game.ErrBadRules)

	junk := filepath.Join(t.TempDir(), "junk.yaml")
	require.NoError(t, os.WriteFile(junk, []byte("tiers: [1, 2"), 0o600))
	_, err = LoadRules(junk)
	assert.Error(t, err)
}
