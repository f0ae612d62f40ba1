package game

import (
	"github.com/peterkuimelis/netwars/internal/log"
)

// PlayClassification plays a classification card. Permanent classifications
// enter the player's classification area; when the area is full, discardClass
// names the card to give up. Steal cards (head-hunter, seal-the-deal) take
// targetClass from the opponent instead, optionally swapping out discardClass
// to make room.
func (e *Engine) PlayClassification(player int, cardID CardID, targetClass, discardClass NodeID) bool {
	if reason := e.checkMove(player, false); reason != "" {
		return e.reject(player, "cannot play classification: %s", reason)
	}
	p := e.state.Players[player]
	card, ok := p.HandCard(cardID)
	if !ok || card.Type != CardTypeClassification {
		return e.reject(player, "card %d is not a classification in your hand", cardID)
	}
	if discardClass != NoNode {
		if _, ok := p.Classification(discardClass); !ok {
			return e.reject(player, "#%d is not one of your classifications", discardClass)
		}
	}
	if IsSteal(card.Subtype) {
		return e.playSteal(player, card, targetClass, discardClass)
	}

	full := len(p.Classifications) >= MaxClassifications
	if full && discardClass == NoNode {
		return e.reject(player, "you already hold %d classifications; choose one to discard", MaxClassifications)
	}

	t := e.begin(player)
	p = t.gs.Players[player]
	p.RemoveFromHand(cardID)
	if full {
		e.dropClassification(t, player, discardClass, "making room")
	}
	e.enterPlay(t, player, card)
	spend(t.gs, false)
	return e.commit(t)
}

// enterPlay adds a classification to owner's area and fires its on-entry
// effect: clearing its issue type network-wide, or the field-tech move.
func (e *Engine) enterPlay(t *tx, owner int, card Card) {
	gs := t.gs
	p := gs.Players[owner]
	p.Classifications = append(p.Classifications, &PlacedCard{ID: gs.NextNodeID(), Card: card})
	t.emit(log.NewPlayClassificationEvent(gs.Turn, t.phase(), owner, card.Name, string(card.Subtype)))

	if issue, ok := ClearedBy(card.Subtype); ok {
		removed := p.Network.ClearIssues(issue)
		gs.discard(removed...)
		for _, is := range removed {
			t.emit(log.NewAutoResolveEvent(gs.Turn, t.phase(), owner, is.Name, string(is.Subtype), card.Name))
		}
	}
	if card.Subtype == SubFieldTech && owner == gs.CurrentPlayer {
		grantEquipmentMove(gs)
	}
}

func (e *Engine) dropClassification(t *tx, owner int, id NodeID, reason string) {
	pc, ok := t.gs.Players[owner].removeClassification(id)
	if !ok {
		return
	}
	t.gs.discard(pc.Card)
	t.emit(log.NewDiscardClassificationEvent(t.gs.Turn, t.phase(), owner, pc.Card.Name, string(pc.Card.Subtype), reason))
}

// playSteal validates and starts a steal. Seal-the-deal and uncontested
// head-hunters resolve at once; otherwise a head-hunter battle opens with
// the defender to respond.
func (e *Engine) playSteal(player int, card Card, targetClass, discardClass NodeID) bool {
	gs := e.state
	defIdx := gs.Opponent(player)
	defender := gs.Players[defIdx]
	target, ok := defender.Classification(targetClass)
	if !ok {
		return e.reject(player, "#%d is not one of P%d's classifications", targetClass, defIdx+1)
	}
	if defender.StealProtected() {
		return e.reject(player, "P%d's classifications are protected by a matching pair", defIdx+1)
	}

	t := e.begin(player)
	t.gs.Players[player].RemoveFromHand(card.ID)
	spend(t.gs, false)

	if card.Subtype == SubSealTheDeal || defender.CountInHand(SubHeadHunter) == 0 {
		t.gs.discard(card)
		e.resolveSteal(t, player, targetClass, discardClass)
		return e.commit(t)
	}

	t.gs.setInterrupt(&HeadHunterBattle{
		AttackerIndex:          player,
		DefenderIndex:          defIdx,
		AttackCard:             card,
		TargetClassification:   targetClass,
		DiscardClassification:  discardClass,
		PreviousPhase:          gs.Phase,
		PreviousMovesRemaining: t.gs.MovesRemaining,
		PreviousEquipmentMoves: t.gs.EquipmentMovesRemaining,
	})
	t.emit(log.NewHeadHunterStartEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), target.String()))
	return e.commit(t)
}

// resolveSteal moves the target classification to the attacker. The card is
// discarded instead when the attacker already holds its subtype, or when the
// attacker's area is full and no classification was offered for the swap.
func (e *Engine) resolveSteal(t *tx, attacker int, targetClass, discardClass NodeID) {
	gs := t.gs
	att := gs.Players[attacker]
	defIdx := gs.Opponent(attacker)
	stolen, ok := gs.Players[defIdx].removeClassification(targetClass)
	if !ok {
		return
	}
	sub := stolen.Card.Subtype
	t.emit(log.NewDiscardClassificationEvent(gs.Turn, t.phase(), defIdx, stolen.Card.Name, string(sub), "stolen"))

	var swap *PlacedCard
	if discardClass != NoNode && len(att.Classifications) >= MaxClassifications {
		swap, _ = att.Classification(discardClass)
	}
	held := 0
	for _, pc := range att.Classifications {
		if pc.Card.Subtype == sub {
			held++
		}
	}
	if swap != nil && swap.Card.Subtype == sub {
		held--
	}

	switch {
	case held > 0:
		gs.discard(stolen.Card)
		t.emit(log.NewStealEvent(gs.Turn, t.phase(), attacker, stolen.Card.Name, string(sub), "already held, discarded"))
	case len(att.Classifications) >= MaxClassifications && swap == nil:
		gs.discard(stolen.Card)
		t.emit(log.NewStealEvent(gs.Turn, t.phase(), attacker, stolen.Card.Name, string(sub), "no room, discarded"))
	default:
		if swap != nil {
			e.dropClassification(t, attacker, swap.ID, "making room")
		}
		t.emit(log.NewStealEvent(gs.Turn, t.phase(), attacker, stolen.Card.Name, string(sub), "added"))
		e.enterPlay(t, attacker, stolen.Card)
	}
}
