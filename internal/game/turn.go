package game

import "github.com/peterkuimelis/netwars/internal/log"

// EndPhase ends the current player's turn: draw to MaxHandSize, score the
// enabled connected computers, check for a win, then hand over.
func (e *Engine) EndPhase(player int) bool {
	if reason := e.checkTurn(player); reason != "" {
		return e.reject(player, "cannot end phase: %s", reason)
	}
	gs := e.state
	if gs.Phase != PhaseMoves && gs.Phase != PhaseDiscard {
		return e.reject(player, "cannot end the %s phase", gs.Phase)
	}
	t := e.begin(player)
	e.endTurn(t)
	return e.commit(t)
}

// EnterDiscardPhase switches the current turn to the discard variant, where
// discarding is free.
func (e *Engine) EnterDiscardPhase(player int) bool {
	if reason := e.checkTurn(player); reason != "" {
		return e.reject(player, "cannot enter discard phase: %s", reason)
	}
	if e.state.Phase != PhaseMoves {
		return e.reject(player, "cannot enter discard phase from %s", e.state.Phase)
	}
	t := e.begin(player)
	t.gs.Phase = PhaseDiscard
	t.emit(log.NewPhaseChangeEvent(t.gs.Turn, t.phase(), player))
	return e.commit(t)
}

// DiscardCard discards a hand card. It costs a move in the moves phase and
// is free in the discard phase.
func (e *Engine) DiscardCard(player int, cardID CardID) bool {
	if reason := e.checkTurn(player); reason != "" {
		return e.reject(player, "cannot discard: %s", reason)
	}
	gs := e.state
	paid := gs.Phase == PhaseMoves
	if paid {
		if reason := e.checkMove(player, false); reason != "" {
			return e.reject(player, "cannot discard: %s", reason)
		}
	} else if gs.Phase != PhaseDiscard {
		return e.reject(player, "cannot discard in the %s phase", gs.Phase)
	}
	if _, ok := gs.Players[player].HandCard(cardID); !ok {
		return e.reject(player, "card %d is not in your hand", cardID)
	}

	t := e.begin(player)
	card, _ := t.gs.Players[player].RemoveFromHand(cardID)
	t.gs.discard(card)
	if paid {
		spend(t.gs, false)
	}
	t.emit(log.NewDiscardEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype)))
	return e.commit(t)
}

// endTurn performs the atomic end-of-turn sequence inside t.
func (e *Engine) endTurn(t *tx) {
	gs := t.gs
	cur := gs.CurrentPlayer
	p := gs.Players[cur]

	e.drawTo(t, cur, MaxHandSize)

	gained := p.Network.ScoringComputers()
	p.Score += gained
	t.emit(log.NewScoreEvent(gs.Turn, t.phase(), cur, gained, p.Score))

	if p.Score >= WinningScore {
		gs.Phase = PhaseGameOver
		gs.Winner = cur
		gs.MovesRemaining = 0
		gs.EquipmentMovesRemaining = 0
		t.emit(log.NewWinEvent(gs.Turn, t.phase(), cur, "reached the winning score"))
		return
	}

	gs.CurrentPlayer = gs.Opponent(cur)
	gs.Turn++
	e.beginTurn(t)
}

// beginTurn resets the move budget for the current player.
func (e *Engine) beginTurn(t *tx) {
	gs := t.gs
	gs.Phase = PhaseMoves
	gs.MovesRemaining = BaseMoves
	gs.EquipmentMovesRemaining = 0
	gs.EquipmentBonusGranted = false
	if gs.Current().HasClassification(SubFieldTech) {
		grantEquipmentMove(gs)
	}
	t.emit(log.NewTurnEvent(gs.Turn, gs.CurrentPlayer, gs.MovesRemaining, gs.EquipmentMovesRemaining))
}

// grantEquipmentMove gives the field-tech bonus, at most once per turn.
func grantEquipmentMove(gs *GameState) {
	if gs.EquipmentBonusGranted {
		return
	}
	gs.EquipmentMovesRemaining = 1
	gs.EquipmentBonusGranted = true
}

// drawTo fills a player's hand up to n cards.
func (e *Engine) drawTo(t *tx, player, n int) {
	drawn := 0
	for len(t.gs.Players[player].Hand) < n {
		if !e.drawCard(t, player) {
			break
		}
		drawn++
	}
	if drawn > 0 {
		t.emit(log.NewDrawEvent(t.gs.Turn, t.phase(), player, drawn))
	}
}

// drawCard moves the top card of the draw pile to a hand, reshuffling the
// discard pile when the draw pile runs out. Returns false if both are empty.
func (e *Engine) drawCard(t *tx, player int) bool {
	gs := t.gs
	if len(gs.DrawPile) == 0 {
		if len(gs.DiscardPile) == 0 {
			return false
		}
		gs.DrawPile = gs.DiscardPile
		gs.DiscardPile = nil
		ShuffleCards(gs.DrawPile, e.rng)
		t.emit(log.NewShuffleEvent(gs.Turn, t.phase(), player, len(gs.DrawPile)))
	}
	top := gs.DrawPile[len(gs.DrawPile)-1]
	gs.DrawPile = gs.DrawPile[:len(gs.DrawPile)-1]
	gs.Players[player].Hand = append(gs.Players[player].Hand, top)
	return true
}
