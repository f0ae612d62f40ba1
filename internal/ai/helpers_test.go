package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// newGame starts an unshuffled game where P1 is human and P2 can take an
// opponent controller. The seats hold hand0 and hand1 (padded with pad) over
// a draw pile of 40 pad cards.
func newGame(t *testing.T, first int, hand0, hand1 []game.Subtype, pad game.Subtype) (*game.Engine, *log.MemoryLogger) {
	t.Helper()
	hands := [2][]game.Subtype{hand0, hand1}
	var deal []game.Subtype
	for i := 0; i < game.MaxHandSize; i++ {
		for p := 0; p < 2; p++ {
			seat := (first + p) % 2
			sub := pad
			if i < len(hands[seat]) {
				sub = hands[seat][i]
			}
			deal = append(deal, sub)
		}
	}

	var deck []game.Card
	id := game.CardID(1)
	for i := 0; i < 40; i++ {
		deck = append(deck, game.NewCard(id, pad))
		id++
	}
	for i := len(deal) - 1; i >= 0; i-- {
		deck = append(deck, game.NewCard(id, deal[i]))
		id++
	}

	logger := log.NewMemoryLogger()
	e := game.NewEngine(game.Config{
		Humans:      [2]bool{true, false},
		Deck:        deck,
		Logger:      logger,
		Seed:        11,
		NoShuffle:   true,
		FirstPlayer: first,
	})
	return e, logger
}

func cardOf(t *testing.T, e *game.Engine, player int, s game.Subtype) game.CardID {
	t.Helper()
	c, ok := e.State().Players[player].FirstInHand(s)
	require.True(t, ok, "P%d holds no %s", player+1, s)
	return c.ID
}

func mustApply(t *testing.T, e *game.Engine, ok bool) {
	t.Helper()
	if !ok {
		lines := e.State().Log.Lines
		require.FailNow(t, "action rejected", "%v", lines)
	}
}

func newExpert(seed uint64) *Opponent {
	return New(Config{Difficulty: Expert, Seed: seed, Logger: log.DiscardLogger{}})
}

// connected builds a switch → cable → computers chain with the given ids.
func connected(swID, cableID game.NodeID, capacity int, computers ...game.NodeID) *game.SwitchNode {
	cableSub := game.SubCable2
	if capacity == 3 {
		cableSub = game.SubCable3
	}
	cable := &game.CableNode{
		PlacedCard:   game.PlacedCard{ID: cableID, Card: game.NewCard(game.CardID(cableID), cableSub)},
		MaxComputers: capacity,
	}
	for _, id := range computers {
		cable.Computers = append(cable.Computers, &game.PlacedCard{ID: id, Card: game.NewCard(game.CardID(id), game.SubComputer)})
	}
	return &game.SwitchNode{
		PlacedCard: game.PlacedCard{ID: swID, Card: game.NewCard(game.CardID(swID), game.SubSwitch)},
		Cables:     []*game.CableNode{cable},
	}
}
