package game

import (
	"github.com/peterkuimelis/netwars/internal/log"
)

// PlayAttack attaches an issue card to a node on the opponent's network. If
// the opponent holds the classification that clears that issue, the attack
// is resolved on arrival and discarded.
func (e *Engine) PlayAttack(player int, cardID CardID, target NodeID, targetPlayer int) bool {
	if reason := e.checkMove(player, false); reason != "" {
		return e.reject(player, "cannot attack: %s", reason)
	}
	gs := e.state
	card, ok := gs.Players[player].HandCard(cardID)
	if !ok {
		return e.reject(player, "card %d is not in your hand", cardID)
	}
	if card.Subtype == SubAudit {
		return e.reject(player, "audits are started with StartAudit")
	}
	if !IsIssue(card.Subtype) {
		return e.reject(player, "%s is not an attack", card.Name)
	}
	if targetPlayer != gs.Opponent(player) {
		return e.reject(player, "attacks must target your opponent")
	}
	ref, ok := gs.Players[targetPlayer].Network.Find(target)
	if !ok {
		return e.reject(player, "#%d is not on P%d's network", target, targetPlayer+1)
	}
	if ref.Node.HasIssue(card.Subtype) {
		return e.reject(player, "%s already has %s", ref.Node, card.Name)
	}

	t := e.begin(player)
	p := t.gs.Players[player]
	defender := t.gs.Players[targetPlayer]
	p.RemoveFromHand(cardID)
	spend(t.gs, false)

	if protector, ok := ProtectorOf(card.Subtype); ok && defender.HasClassification(protector) {
		t.gs.discard(card)
		t.emit(log.NewAutoResolveEvent(t.gs.Turn, t.phase(), targetPlayer, card.Name, string(card.Subtype), Catalog[protector].Name))
		return e.commit(t)
	}

	name := ref.Node.String()
	disabled, err := defender.Network.ApplyAttack(target, card)
	if err != nil {
		return e.reject(player, "cannot attack: %v", err)
	}
	t.emit(log.NewAttackEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), name, disabled))
	return e.commit(t)
}

// PlayResolution clears issues from a node on the player's own network.
func (e *Engine) PlayResolution(player int, cardID CardID, target NodeID) bool {
	if reason := e.checkMove(player, false); reason != "" {
		return e.reject(player, "cannot resolve: %s", reason)
	}
	p := e.state.Players[player]
	card, ok := p.HandCard(cardID)
	if !ok || card.Type != CardTypeResolution {
		return e.reject(player, "card %d is not a resolution in your hand", cardID)
	}
	ref, ok := p.Network.Find(target)
	if !ok {
		return e.reject(player, "#%d is not on your network", target)
	}
	if !resolvable(ref.Node, card.Subtype) {
		return e.reject(player, "%s has no issue that %s resolves", ref.Node, card.Name)
	}

	t := e.begin(player)
	p = t.gs.Players[player]
	p.RemoveFromHand(cardID)
	removed, enabled, err := p.Network.ApplyResolution(target, card)
	if err != nil {
		return e.reject(player, "cannot resolve: %v", err)
	}
	t.gs.discard(card)
	t.gs.discard(removed...)
	spend(t.gs, false)
	t.emit(log.NewResolveEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), ref.Node.String(), enabled))
	return e.commit(t)
}

func resolvable(node *PlacedCard, res Subtype) bool {
	for _, is := range node.Issues {
		if Resolves(res, is.Subtype) {
			return true
		}
	}
	return false
}
