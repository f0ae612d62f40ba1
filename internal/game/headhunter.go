package game

import (
	"github.com/peterkuimelis/netwars/internal/log"
)

// RespondToHeadHunterBattle extends the steal chain with a head-hunter card.
func (e *Engine) RespondToHeadHunterBattle(player int, cardID CardID) bool {
	if reason := e.checkBattle(player, PhaseHeadHunterBattle); reason != "" {
		return e.reject(player, "cannot respond: %s", reason)
	}
	card, ok := e.state.Players[player].HandCard(cardID)
	if !ok || card.Subtype != SubHeadHunter {
		return e.reject(player, "the steal can only be contested with a Head Hunter")
	}

	t := e.begin(player)
	t.gs.Players[player].RemoveFromHand(cardID)
	h, _ := t.gs.HeadHunter()
	h.Chain = append(h.Chain, ChainLink{Player: player, Card: card})
	t.emit(log.NewChainLinkEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), len(h.Chain)))
	return e.commit(t)
}

// PassHeadHunterBattle ends the steal chain. A defender pass lets the steal
// through; an attacker pass means it is blocked. Either way the base turn
// resumes with the moves it had after the steal was played.
func (e *Engine) PassHeadHunterBattle(player int) bool {
	if reason := e.checkBattle(player, PhaseHeadHunterBattle); reason != "" {
		return e.reject(player, "cannot pass: %s", reason)
	}

	t := e.begin(player)
	gs := t.gs
	h, _ := gs.HeadHunter()
	t.emit(log.NewPassEvent(gs.Turn, t.phase(), player))

	gs.discard(h.AttackCard)
	for _, link := range h.Chain {
		gs.discard(link.Card)
	}
	gs.clearInterrupt(h.PreviousPhase)
	gs.MovesRemaining = h.PreviousMovesRemaining
	gs.EquipmentMovesRemaining = h.PreviousEquipmentMoves

	if player == h.DefenderIndex {
		e.resolveSteal(t, h.AttackerIndex, h.TargetClassification, h.DiscardClassification)
	} else {
		target, _ := gs.Players[h.DefenderIndex].Classification(h.TargetClassification)
		t.emit(log.NewStealBlockedEvent(gs.Turn, t.phase(), h.AttackerIndex, target.String()))
	}
	return e.commit(t)
}
