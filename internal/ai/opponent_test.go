package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

func TestDeadHandDiscardsOnePerMove(t *testing.T) {
	trained := []game.Subtype{game.SubTrained, game.SubTrained, game.SubTrained, game.SubTrained, game.SubTrained, game.SubTrained}
	e, logger := newGame(t, 1, nil, trained, game.SubTrained)

	o := newExpert(5)
	e.SetOpponent(1, o)
	e.ExecuteAITurn()

	discards := 0
	for _, ev := range logger.EventsOfType(log.EventDiscard) {
		if ev.Player == 1 {
			discards++
			assert.Equal(t, string(game.SubTrained), ev.Subtype)
		}
	}
	assert.Equal(t, game.BaseMoves, discards)

	gs := e.State()
	assert.Equal(t, 0, gs.CurrentPlayer, "spending the last move ends the turn")
	assert.Len(t, gs.Players[1].Hand, game.MaxHandSize, "hand is refilled at end of turn")
}

func TestAIBuildsAScoringNetwork(t *testing.T) {
	hand := []game.Subtype{game.SubSwitch, game.SubCable2, game.SubComputer, game.SubComputer, game.SubComputer, game.SubComputer}
	e, _ := newGame(t, 1, nil, hand, game.SubComputer)
	e.SetOpponent(1, newExpert(9))

	e.ExecuteAITurn()
	gs := e.State()
	net := gs.Players[1].Network
	require.Len(t, net.Switches, 1)
	require.Len(t, net.Switches[0].Cables, 1)
	assert.Equal(t, 1, net.ScoringComputers())
	assert.Equal(t, 1, gs.Players[1].Score)
	assert.Equal(t, 0, gs.CurrentPlayer)
}

func TestAIStopsWhenNothingIsWorthwhile(t *testing.T) {
	hand := []game.Subtype{game.SubSwitch, game.SubCable2, game.SubComputer}
	e, logger := newGame(t, 1, nil, hand, game.SubSwitch)
	e.SetOpponent(1, New(Config{Difficulty: Expert, Seed: 13}))

	e.ExecuteAITurn()
	e.EndPhase(0)
	before := len(placements(e))
	e.ExecuteAITurn()

	// A second and third switch add nothing, so the turn ends early.
	assert.Equal(t, before, len(placements(e)))
	assert.Equal(t, 0, e.State().CurrentPlayer)
	assert.NotEmpty(t, logger.EventsOfType(log.EventAIDecision))
}

func placements(e *game.Engine) []game.NodeID {
	var ids []game.NodeID
	e.State().Players[1].Network.Walk(func(r game.NodeRef) { ids = append(ids, r.Node.ID) })
	return ids
}

func TestSelectAuditComputersPrefersScoring(t *testing.T) {
	target := []game.Subtype{game.SubSwitch, game.SubCable3, game.SubComputer, game.SubComputer, game.SubComputer, game.SubComputer}
	auditor := []game.Subtype{game.SubAudit}
	e, _ := newGame(t, 0, target, auditor, game.SubComputer)

	mustApply(t, e, e.PlaySwitch(0, cardOf(t, e, 0, game.SubSwitch)))
	sw := e.State().Players[0].Network.Switches[0].ID
	mustApply(t, e, e.PlayCable(0, cardOf(t, e, 0, game.SubCable3), sw))
	cable := e.State().Players[0].Network.Switches[0].Cables[0].ID
	mustApply(t, e, e.PlayComputer(0, cardOf(t, e, 0, game.SubComputer), cable))
	mustApply(t, e, e.EndPhase(1))
	mustApply(t, e, e.PlayComputer(0, cardOf(t, e, 0, game.SubComputer), game.NoNode))
	mustApply(t, e, e.PlayComputer(0, cardOf(t, e, 0, game.SubComputer), cable))
	mustApply(t, e, e.EndPhase(0))

	mustApply(t, e, e.StartAudit(1, cardOf(t, e, 1, game.SubAudit), 0))
	mustApply(t, e, e.PassAudit(0))
	a, ok := e.State().Audit()
	require.True(t, ok)
	require.Equal(t, 2, a.ComputersToReturn)

	newExpert(3).SelectAuditComputers(e, 1)
	gs := e.State()
	assert.Nil(t, gs.Interrupt, "selection is confirmed")
	net := gs.Players[0].Network
	assert.Equal(t, 0, len(net.ConnectedComputers()), "both connected computers were taken")
	assert.Len(t, net.FloatingComputers, 1, "the floating computer is left")
	assert.Len(t, gs.Players[0].AuditedComputers, 2)
}

func TestShouldCounter(t *testing.T) {
	o := newExpert(1)
	assert.False(t, o.ShouldCounter(0, 0, 0))
	assert.True(t, o.ShouldCounter(2, 0, 0))
	assert.False(t, o.ShouldCounter(1, 0, 1), "a sure reply wipes out a small stake")
	assert.False(t, o.ShouldCounter(1, 8, 0), "deep chains cost more than they are worth")
}

func TestRespondToAuditBlocksWhenScoring(t *testing.T) {
	target := []game.Subtype{game.SubSwitch, game.SubCable2, game.SubComputer, game.SubHacked}
	auditor := []game.Subtype{game.SubAudit}
	e, _ := newGame(t, 0, target, auditor, game.SubComputer)

	mustApply(t, e, e.PlaySwitch(0, cardOf(t, e, 0, game.SubSwitch)))
	sw := e.State().Players[0].Network.Switches[0].ID
	mustApply(t, e, e.PlayCable(0, cardOf(t, e, 0, game.SubCable2), sw))
	cable := e.State().Players[0].Network.Switches[0].Cables[0].ID
	mustApply(t, e, e.PlayComputer(0, cardOf(t, e, 0, game.SubComputer), cable))
	mustApply(t, e, e.StartAudit(1, cardOf(t, e, 1, game.SubAudit), 0))

	newExpert(2).RespondToAudit(e, 0)
	a, ok := e.State().Audit()
	require.True(t, ok)
	require.Len(t, a.Chain, 1)
	assert.Equal(t, game.SubHacked, a.Chain[0].Card.Subtype)
}

func TestAIVersusAIKeepsInvariants(t *testing.T) {
	e := game.NewEngine(game.Config{Seed: 21, Logger: log.DiscardLogger{}})
	e.SetOpponent(0, New(Config{Difficulty: Medium, Seed: 1}))
	e.SetOpponent(1, New(Config{Difficulty: Hard, Seed: 2}))

	for i := 0; i < 60 && !e.State().Over(); i++ {
		e.AdvanceAI(4)
		require.NoError(t, e.State().CheckInvariants())
	}
	gs := e.State()
	assert.True(t, gs.Over() || gs.Turn > 10, "both seats keep taking turns")
}
