package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/config"
)

func TestSimulationRuns(t *testing.T) {
	sim := Simulation{Games: 2, Levels: [2]ai.Difficulty{ai.Easy, ai.Expert}, Seed: 31, MaxTurns: 60}
	res, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Games)
	assert.Equal(t, res.Games, res.Wins[0]+res.Wins[1]+res.Unfinished)
	assert.Contains(t, res.String(), "P2 (expert)")
}

func TestSimulationHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Simulation{Games: 1}.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulateCommand(t *testing.T) {
	cfg := config.Config{Difficulty: "medium", Seed: 5}
	root := newRootCmd(&cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"simulate", "-n", "1", "--p1", "easy", "--p2", "easy"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "1 games")
}

func TestSimulateRejectsUnknownTier(t *testing.T) {
	cfg := config.Config{Difficulty: "medium"}
	root := newRootCmd(&cfg)
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"simulate", "--p1", "grandmaster"})
	assert.Error(t, root.Execute())
}
