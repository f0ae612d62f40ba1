package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peterkuimelis/netwars/internal/game"
)

func TestAnalyzeNetwork(t *testing.T) {
	var n game.PlayerNetwork
	n.Switches = []*game.SwitchNode{
		connected(1, 2, 2, 3, 4),
		connected(5, 6, 3, 7),
	}
	n.FloatingComputers = []*game.PlacedCard{{ID: 8, Card: game.NewCard(8, game.SubComputer)}}
	n.Switches[1].Issues = []game.Card{game.NewCard(900, game.SubHacked)}
	n.Recompute()

	na := AnalyzeNetwork(&n)
	assert.Equal(t, 4, na.Total)
	assert.Equal(t, 3, na.Connected)
	assert.Equal(t, 2, na.Scoring)
	assert.Equal(t, 1, na.EnabledSwitches)
	assert.Equal(t, 1, na.DisabledSwitches)
	assert.Equal(t, 1, na.EnabledCables)
	assert.Equal(t, 1, na.DisabledCables)
	assert.Equal(t, 1, na.Floating)
	assert.Equal(t, 0, na.FreeCapacity, "full cable and disabled cable offer no room")
	assert.Equal(t, 1, na.Issues)
	assert.Zero(t, na.Redundancy, "all yield hangs off one switch")
	assert.InDelta(t, 3.0/8.0, na.Vulnerability, 1e-9)

	n.Switches[1].Issues = nil
	n.Recompute()
	na = AnalyzeNetwork(&n)
	assert.Equal(t, 3, na.Scoring)
	assert.Equal(t, 2, na.FreeCapacity)
	assert.InDelta(t, 1.0/3.0, na.Redundancy, 1e-9)
	assert.Zero(t, na.Vulnerability)
}

func TestAnalyzeHandDeadCards(t *testing.T) {
	gs := game.NewGameState([2]string{"A", "B"}, [2]bool{true, false})
	gs.Players[0].Hand = []game.Card{
		game.NewCard(1, game.SubAudit),
		game.NewCard(2, game.SubHacked),
		game.NewCard(3, game.SubSecured),
		game.NewCard(4, game.SubHeadHunter),
		game.NewCard(5, game.SubSwitch),
		game.NewCard(6, game.SubFieldTech),
	}

	h := AnalyzeHand(gs, 0)
	assert.Len(t, h.Families[FamilyEquipment], 1)
	assert.Len(t, h.Families[FamilyAttack], 1)
	assert.Len(t, h.Families[FamilyAudit], 1)
	assert.Len(t, h.Families[FamilySteal], 1)
	for _, id := range []game.CardID{1, 2, 3, 4} {
		assert.True(t, h.IsDead(id), "card %d should be dead against an empty opponent", id)
	}
	assert.False(t, h.IsDead(5))
	assert.False(t, h.IsDead(6))

	opp := gs.Players[1]
	opp.Network.FloatingComputers = []*game.PlacedCard{{ID: 10, Card: game.NewCard(10, game.SubComputer)}}
	opp.Classifications = []*game.PlacedCard{{ID: 11, Card: game.NewCard(11, game.SubFacilities)}}
	h = AnalyzeHand(gs, 0)
	assert.False(t, h.IsDead(1), "audit has a computer to take")
	assert.False(t, h.IsDead(2), "hacked has an open node")
	assert.False(t, h.IsDead(4), "there is a classification to steal")
	assert.True(t, h.IsDead(3), "nothing of ours to resolve")

	opp.Classifications = append(opp.Classifications, &game.PlacedCard{ID: 12, Card: game.NewCard(12, game.SubSecuritySpecialist)})
	h = AnalyzeHand(gs, 0)
	assert.True(t, h.IsDead(2), "Security Specialist auto-resolves hacked")
}
