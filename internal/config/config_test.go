package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, ":8080", cfg.WebAddr)
	assert.Equal(t, "medium", cfg.Difficulty)
	assert.Zero(t, cfg.Seed)

	comp, err := cfg.Composition()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultComposition(), comp)

	tun, err := cfg.Tuning()
	require.NoError(t, err)
	assert.Equal(t, ai.DefaultTuning(), tun)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, ai.Medium, level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NETWARS_ADDR", "127.0.0.1:9000")
	t.Setenv("NETWARS_DIFFICULTY", "expert")
	t.Setenv("NETWARS_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, uint64(42), cfg.Seed)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, ai.Expert, level)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("NETWARS_SEED", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestCompositionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := []byte(`decks:
  - name: first
    cards:
      - {subtype: switch, count: 4}
  - name: tiny
    cards:
      - {subtype: switch, count: 2}
      - {subtype: computer, count: 10}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	comp, err := Config{DeckFile: path}.Composition()
	require.NoError(t, err)
	assert.Equal(t, "first", comp.Name)

	comp, err = Config{DeckFile: path, DeckName: "tiny"}.Composition()
	require.NoError(t, err)
	assert.Equal(t, 12, comp.Total())

	_, err = Config{DeckFile: path, DeckName: "missing"}.Composition()
	assert.Error(t, err)

	_, err = Config{DeckFile: filepath.Join(t.TempDir(), "none.yaml")}.Composition()
	assert.ErrorContains(t, err, "read deck file")
}

func TestBadDifficulty(t *testing.T) {
	_, err := Config{Difficulty: "impossible"}.Level()
	assert.Error(t, err)
}
