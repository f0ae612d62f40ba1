package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

func smallDeck() game.Composition {
	return game.Composition{Name: "small", Counts: map[game.Subtype]int{
		game.SubHeadHunter: 2,
		game.SubComputer:   8,
	}}
}

func TestCounterLikelihoodCountsObservedCards(t *testing.T) {
	m := NewOpponentModel()
	comp := smallDeck()

	prior := 1 - 0.8*0.8*0.8
	assert.InDelta(t, prior, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 0), 1e-9)
	assert.InDelta(t, prior, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 1), 1e-9)

	for i := 0; i < 2; i++ {
		m.Observe(log.GameEvent{Type: log.EventHeadHunterStart, Player: 0, Subtype: string(game.SubHeadHunter)})
	}
	assert.Equal(t, 2, m.Observed(game.SubHeadHunter))
	assert.Zero(t, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 1), "every copy has been seen")
	assert.InDelta(t, 0.5*prior, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 0.5), 1e-9)

	m.Observe(log.GameEvent{Type: log.EventShuffle, Player: 0})
	assert.Zero(t, m.Observed(game.SubHeadHunter), "a reshuffle makes discards unseen again")
}

func TestCounterLikelihoodUsesOwnHand(t *testing.T) {
	m := NewOpponentModel()
	known := []game.Card{game.NewCard(1, game.SubHeadHunter), game.NewCard(2, game.SubHeadHunter)}
	assert.Zero(t, m.CounterLikelihood(1, game.SubHeadHunter, 3, known, smallDeck(), 1))
}

func TestPassMarksLackingUntilDraw(t *testing.T) {
	m := NewOpponentModel()
	comp := smallDeck()
	m.Observe(log.GameEvent{Type: log.EventPass, Player: 1, Phase: game.PhaseHeadHunterBattle.String()})
	assert.Zero(t, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 1))

	m.Observe(log.GameEvent{Type: log.EventDraw, Player: 1})
	assert.Positive(t, m.CounterLikelihood(1, game.SubHeadHunter, 3, nil, comp, 1))
}

func TestAuditPassRole(t *testing.T) {
	m := NewOpponentModel()
	comp := game.Composition{Counts: map[game.Subtype]int{game.SubHacked: 2, game.SubSecured: 2, game.SubComputer: 6}}
	m.Observe(log.GameEvent{Type: log.EventAuditStart, Player: 0, Phase: game.PhaseMoves.String()})
	m.Observe(log.GameEvent{Type: log.EventPass, Player: 1, Phase: game.PhaseAudit.String()})

	assert.Zero(t, m.CounterLikelihood(1, game.SubHacked, 3, nil, comp, 1), "target passed, so it holds no hacked")
	assert.Positive(t, m.CounterLikelihood(1, game.SubSecured, 3, nil, comp, 1))
}

func TestBehavior(t *testing.T) {
	m := NewOpponentModel()
	assert.Equal(t, BehaviorUnknown, m.Behavior(0))

	for i := 0; i < 4; i++ {
		m.Observe(log.GameEvent{Type: log.EventAttack, Player: 0, Subtype: string(game.SubHacked)})
	}
	m.Observe(log.GameEvent{Type: log.EventPlaceEquipment, Player: 0, Subtype: string(game.SubSwitch)})
	assert.Equal(t, BehaviorAggressive, m.Behavior(0))
	assert.Equal(t, BehaviorUnknown, m.Behavior(1))

	for i := 0; i < recentWindow; i++ {
		m.Observe(log.GameEvent{Type: log.EventConnect, Player: 0})
	}
	assert.Equal(t, BehaviorBuilding, m.Behavior(0), "only the last actions count")
}

func TestStolenClassificationCountedOnce(t *testing.T) {
	m := NewOpponentModel()
	m.Observe(log.GameEvent{Type: log.EventSteal, Player: 0, Subtype: string(game.SubFacilities)})
	m.Observe(log.GameEvent{Type: log.EventPlayClassification, Player: 0, Subtype: string(game.SubFacilities)})
	assert.Zero(t, m.Observed(game.SubFacilities))

	m.Observe(log.GameEvent{Type: log.EventPlayClassification, Player: 0, Subtype: string(game.SubFacilities)})
	assert.Equal(t, 1, m.Observed(game.SubFacilities))
}
