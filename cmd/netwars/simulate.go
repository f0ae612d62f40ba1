package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// defaultMaxTurns stops a simulated game that never reaches the winning score.
const defaultMaxTurns = 400

// Simulation plays AI-versus-AI games. Seats alternate who moves first.
type Simulation struct {
	Games       int
	Levels      [2]ai.Difficulty
	Composition game.Composition
	Tuning      *ai.Tuning
	Seed        uint64 // 0 for random; otherwise game i uses Seed+i
	MaxTurns    int
	Logger      log.EventLogger
}

// SimResult tallies a simulation.
type SimResult struct {
	Levels     [2]ai.Difficulty
	Games      int
	Wins       [2]int
	Unfinished int
	Turns      int
}

func (r SimResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games\n", r.Games)
	for i, lvl := range r.Levels {
		fmt.Fprintf(&sb, "  P%d (%s): %d wins\n", i+1, lvl, r.Wins[i])
	}
	if r.Unfinished > 0 {
		fmt.Fprintf(&sb, "  unfinished: %d\n", r.Unfinished)
	}
	if r.Games > 0 {
		fmt.Fprintf(&sb, "  average length: %.1f turns\n", float64(r.Turns)/float64(r.Games))
	}
	return sb.String()
}

// Run plays every game, checking the state invariants after each decision.
func (s Simulation) Run(ctx context.Context) (SimResult, error) {
	res := SimResult{Levels: s.Levels}
	maxTurns := s.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	logger := s.Logger
	if logger == nil {
		logger = log.DiscardLogger{}
	}

	for i := 0; i < s.Games; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		var seed uint64
		if s.Seed != 0 {
			seed = s.Seed + uint64(i)
		}
		e := game.NewEngine(game.Config{
			Names:       [2]string{"AI-" + s.Levels[0].String(), "AI-" + s.Levels[1].String()},
			Composition: s.Composition,
			Logger:      logger,
			Seed:        seed,
			FirstPlayer: i % 2,
		})
		for seat, lvl := range s.Levels {
			var aiSeed uint64
			if seed != 0 {
				aiSeed = seed*2 + uint64(seat)
			}
			e.SetOpponent(seat, ai.New(ai.Config{
				Difficulty:  lvl,
				Tuning:      s.Tuning,
				Composition: s.Composition,
				Seed:        aiSeed,
				Logger:      log.DiscardLogger{},
			}))
		}

		for !e.State().Over() && e.State().Turn <= maxTurns {
			if e.AdvanceAI(1) == 0 {
				return res, fmt.Errorf("game %d stalled on turn %d", i+1, e.State().Turn)
			}
			if err := e.State().CheckInvariants(); err != nil {
				return res, fmt.Errorf("game %d turn %d: %w", i+1, e.State().Turn, err)
			}
		}

		gs := e.State()
		res.Games++
		res.Turns += gs.Turn
		if gs.Over() {
			res.Wins[gs.Winner]++
		} else {
			res.Unfinished++
		}
	}
	return res, nil
}
