package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningTiers(t *testing.T) {
	tun := DefaultTuning()
	for _, d := range Difficulties {
		_, ok := tun.Difficulties[d.String()]
		assert.True(t, ok, "missing tier %s", d)
	}

	easy, expert := tun.Profile(Easy), tun.Profile(Expert)
	assert.Less(t, easy.LookaheadDepth, expert.LookaheadDepth)
	assert.Greater(t, easy.Randomness, expert.Randomness)
	assert.Greater(t, easy.HoldBackChance, expert.HoldBackChance)
	assert.Less(t, easy.CounterAccuracy, expert.CounterAccuracy)
	assert.InDelta(t, 0.1, tun.Loop.WorthlessFloor, 1e-9)
}

func TestParseTuningRejectsMissingTier(t *testing.T) {
	_, err := ParseTuning([]byte("loop:\n  max_steps: 10\ndifficulties:\n  easy: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medium")
}

func TestLoadTuning(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data, err := os.ReadFile("tuning.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tun, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tun)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}
