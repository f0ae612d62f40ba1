package game

import (
	"github.com/peterkuimelis/netwars/internal/log"
)

// StartAudit plays an audit card against the opponent. The target must hand
// over half their computers (rounded up) unless the counter chain ends with
// the auditor unable to answer a hacked block.
func (e *Engine) StartAudit(player int, cardID CardID, targetPlayer int) bool {
	if reason := e.checkMove(player, false); reason != "" {
		return e.reject(player, "cannot audit: %s", reason)
	}
	gs := e.state
	card, ok := gs.Players[player].HandCard(cardID)
	if !ok || card.Subtype != SubAudit {
		return e.reject(player, "card %d is not an audit in your hand", cardID)
	}
	if targetPlayer != gs.Opponent(player) {
		return e.reject(player, "audits must target your opponent")
	}
	total := gs.Players[targetPlayer].Network.TotalComputers()
	if total == 0 {
		return e.reject(player, "P%d has no computers to audit", targetPlayer+1)
	}

	t := e.begin(player)
	t.gs.Players[player].RemoveFromHand(cardID)
	spend(t.gs, false)
	t.gs.setInterrupt(&AuditBattle{
		AuditorIndex:      player,
		TargetIndex:       targetPlayer,
		AuditCard:         card,
		ComputersToReturn: (total + 1) / 2,
		Step:              AuditCounter,
	})
	t.emit(log.NewAuditStartEvent(t.gs.Turn, t.phase(), player, targetPlayer, (total+1)/2))
	return e.commit(t)
}

// RespondToAudit extends the counter chain: the target answers with hacked,
// the auditor with secured.
func (e *Engine) RespondToAudit(player int, cardID CardID) bool {
	if reason := e.checkBattle(player, PhaseAudit); reason != "" {
		return e.reject(player, "cannot respond: %s", reason)
	}
	a, _ := e.state.Audit()
	if a.Step != AuditCounter {
		return e.reject(player, "cannot respond: the audit is in selection")
	}
	want := a.ResponseSubtype()
	card, ok := e.state.Players[player].HandCard(cardID)
	if !ok || card.Subtype != want {
		return e.reject(player, "the audit needs a %s response", Catalog[want].Name)
	}

	t := e.begin(player)
	t.gs.Players[player].RemoveFromHand(cardID)
	a, _ = t.gs.Audit()
	a.Chain = append(a.Chain, ChainLink{Player: player, Card: card})
	t.emit(log.NewChainLinkEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), len(a.Chain)))
	return e.commit(t)
}

// PassAudit ends the counter chain. A pass by the target lets the audit
// through to selection; a pass by the auditor leaves the block standing.
func (e *Engine) PassAudit(player int) bool {
	if reason := e.checkBattle(player, PhaseAudit); reason != "" {
		return e.reject(player, "cannot pass: %s", reason)
	}
	if a, _ := e.state.Audit(); a.Step != AuditCounter {
		return e.reject(player, "cannot pass: the audit is in selection")
	}

	t := e.begin(player)
	a, _ := t.gs.Audit()
	t.emit(log.NewPassEvent(t.gs.Turn, t.phase(), player))
	if player == a.TargetIndex {
		a.Step = AuditSelection
		for _, pc := range t.gs.Players[a.TargetIndex].Network.Computers() {
			a.Available = append(a.Available, pc.ID)
		}
		t.emit(log.NewAuditSelectEvent(t.gs.Turn, t.phase(), a.AuditorIndex, 0, a.ComputersToReturn))
		return e.commit(t)
	}
	e.finishAudit(t, a, false, 0)
	return e.commit(t)
}

// ToggleAuditComputerSelection adds or removes one of the target's computers
// from the auditor's selection. Selecting past the required count drops the
// oldest selection.
func (e *Engine) ToggleAuditComputerSelection(player int, id NodeID) bool {
	if reason := e.checkBattle(player, PhaseAudit); reason != "" {
		return e.reject(player, "cannot select: %s", reason)
	}
	a, _ := e.state.Audit()
	if a.Step != AuditSelection {
		return e.reject(player, "cannot select: the counter chain is still open")
	}
	if !containsNode(a.Available, id) {
		return e.reject(player, "#%d is not one of the audited computers", id)
	}

	t := e.begin(player)
	a, _ = t.gs.Audit()
	if a.IsSelected(id) {
		a.Selected = removeNode(a.Selected, id)
	} else {
		a.Selected = append(a.Selected, id)
		if len(a.Selected) > a.ComputersToReturn {
			a.Selected = a.Selected[1:]
		}
	}
	t.emit(log.NewAuditSelectEvent(t.gs.Turn, t.phase(), player, len(a.Selected), a.ComputersToReturn))
	return e.commit(t)
}

// ConfirmAuditSelection takes the selected computers into the target's
// audited pool. Exactly ComputersToReturn must be selected.
func (e *Engine) ConfirmAuditSelection(player int) bool {
	if reason := e.checkBattle(player, PhaseAudit); reason != "" {
		return e.reject(player, "cannot confirm: %s", reason)
	}
	a, _ := e.state.Audit()
	if a.Step != AuditSelection {
		return e.reject(player, "cannot confirm: the counter chain is still open")
	}
	if len(a.Selected) != a.ComputersToReturn {
		return e.reject(player, "select %d computer(s), %d selected", a.ComputersToReturn, len(a.Selected))
	}

	t := e.begin(player)
	a, _ = t.gs.Audit()
	target := t.gs.Players[a.TargetIndex]
	computers, issues := target.Network.removeComputers(a.Selected)
	target.AuditedComputers = append(target.AuditedComputers, computers...)
	t.gs.discard(issues...)
	e.finishAudit(t, a, true, len(computers))
	return e.commit(t)
}

// finishAudit discards the audit and every chain card, refills the target's
// hand and returns to the moves phase.
func (e *Engine) finishAudit(t *tx, a *AuditBattle, success bool, taken int) {
	gs := t.gs
	gs.discard(a.AuditCard)
	for _, link := range a.Chain {
		gs.discard(link.Card)
	}
	gs.clearInterrupt(PhaseMoves)
	t.emit(log.NewAuditResultEvent(gs.Turn, t.phase(), a.AuditorIndex, success, taken))
	e.drawTo(t, a.TargetIndex, MaxHandSize)
}

func containsNode(ids []NodeID, id NodeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeNode(ids []NodeID, id NodeID) []NodeID {
	var out []NodeID
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
