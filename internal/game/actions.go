package game

import "fmt"

// LegalActions enumerates the actions player may take right now. Hand cards
// of the same subtype are interchangeable, so each subtype appears once per
// target. Returns nil when the game is not waiting on player.
func (e *Engine) LegalActions(player int) []Action {
	gs := e.state
	decider, ok := gs.Decider()
	if !ok || decider != player {
		return nil
	}
	p := gs.Players[player]

	switch in := gs.Interrupt.(type) {
	case *AuditBattle:
		return auditActions(gs, p, in)
	case *HeadHunterBattle:
		var actions []Action
		if c, ok := p.FirstInHand(SubHeadHunter); ok {
			actions = append(actions, Action{Type: ActionRespondHeadHunter, Player: player, CardID: c.ID, Subtype: c.Subtype,
				Desc: "Contest with Head Hunter"})
		}
		return append(actions, Action{Type: ActionPassHeadHunter, Player: player, Desc: "Pass"})
	}

	if gs.Phase == PhaseDiscard {
		var actions []Action
		for _, c := range uniqueBySubtype(p.Hand) {
			actions = append(actions, Action{Type: ActionDiscard, Player: player, CardID: c.ID, Subtype: c.Subtype,
				Desc: fmt.Sprintf("Discard %s", c.Name)})
		}
		return append(actions, Action{Type: ActionEndPhase, Player: player, Desc: "End turn"})
	}

	var actions []Action
	if hasMove(gs, true) {
		actions = append(actions, equipmentActions(p)...)
	}
	actions = append(actions, connectActions(p)...)
	if gs.MovesRemaining > 0 {
		opp := gs.Players[gs.Opponent(player)]
		actions = append(actions, attackActions(p, opp)...)
		actions = append(actions, resolutionActions(p)...)
		actions = append(actions, classificationActions(p, opp)...)
		for _, c := range uniqueBySubtype(p.Hand) {
			actions = append(actions, Action{Type: ActionDiscard, Player: player, CardID: c.ID, Subtype: c.Subtype,
				Desc: fmt.Sprintf("Discard %s", c.Name)})
		}
	}
	actions = append(actions,
		Action{Type: ActionEnterDiscardPhase, Player: player, Desc: "Enter discard phase"},
		Action{Type: ActionEndPhase, Player: player, Desc: "End turn"},
	)
	return actions
}

func auditActions(gs *GameState, p *Player, a *AuditBattle) []Action {
	var actions []Action
	if a.Step == AuditSelection {
		target := gs.Players[a.TargetIndex]
		for _, id := range a.Available {
			verb := "Select"
			if a.IsSelected(id) {
				verb = "Deselect"
			}
			name := fmt.Sprintf("#%d", id)
			if ref, ok := target.Network.Find(id); ok {
				name = ref.Node.String()
			}
			actions = append(actions, Action{Type: ActionToggleAuditSelection, Player: p.ID, Target: id,
				TargetKind: KindComputer, TargetPlayer: a.TargetIndex, Desc: fmt.Sprintf("%s %s", verb, name)})
		}
		if len(a.Selected) == a.ComputersToReturn {
			actions = append(actions, Action{Type: ActionConfirmAuditSelection, Player: p.ID,
				Desc: fmt.Sprintf("Confirm %d computer(s)", len(a.Selected))})
		}
		return actions
	}
	want := a.ResponseSubtype()
	if c, ok := p.FirstInHand(want); ok {
		actions = append(actions, Action{Type: ActionRespondAudit, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
			Desc: fmt.Sprintf("Respond with %s", c.Name)})
	}
	return append(actions, Action{Type: ActionPassAudit, Player: p.ID, Desc: "Pass"})
}

func equipmentActions(p *Player) []Action {
	var actions []Action
	net := &p.Network
	for _, c := range uniqueBySubtype(p.Hand) {
		switch {
		case c.Subtype == SubSwitch:
			actions = append(actions, Action{Type: ActionPlaySwitch, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
				Desc: "Play Switch"})
		case IsCable(c.Subtype):
			for _, s := range net.Switches {
				actions = append(actions, Action{Type: ActionPlayCable, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
					Target: s.ID, TargetKind: KindSwitch, Desc: fmt.Sprintf("Play %s on %s", c.Name, s.String())})
			}
			actions = append(actions, Action{Type: ActionPlayCable, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
				Desc: fmt.Sprintf("Play %s floating", c.Name)})
		}
	}

	var computers []Card
	if c, ok := p.FirstInHand(SubComputer); ok {
		computers = append(computers, c)
	}
	if len(p.AuditedComputers) > 0 {
		computers = append(computers, p.AuditedComputers[0])
	}
	for i, c := range computers {
		label := "Computer"
		if i == 1 || !hasCard(p.Hand, c.ID) {
			label = "audited Computer"
		}
		for _, cable := range net.Cables() {
			if cable.HasRoom() {
				actions = append(actions, Action{Type: ActionPlayComputer, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
					Target: cable.ID, TargetKind: KindCable, Desc: fmt.Sprintf("Play %s on %s", label, cable.String())})
			}
		}
		actions = append(actions, Action{Type: ActionPlayComputer, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
			Desc: fmt.Sprintf("Play %s floating", label)})
	}

	net.Walk(func(r NodeRef) {
		if r.Kind == KindSwitch || isLoose(net, r.Node.ID) {
			return
		}
		move := func(kind NodeKind, target NodeID, where string) {
			actions = append(actions, Action{Type: ActionMoveEquipment, Player: p.ID, SourceKind: r.Kind, Source: r.Node.ID,
				TargetKind: kind, Target: target, Desc: fmt.Sprintf("Move %s %s", r.Node, where)})
		}
		if r.Kind == KindCable {
			for _, s := range net.Switches {
				if checkDestination(net, r, KindSwitch, s.ID) == "" {
					move(KindSwitch, s.ID, "to "+s.String())
				}
			}
		} else {
			for _, c := range net.Cables() {
				if checkDestination(net, r, KindCable, c.ID) == "" {
					move(KindCable, c.ID, "to "+c.String())
				}
			}
		}
		move(KindNone, NoNode, "off the network")
	})
	return actions
}

func connectActions(p *Player) []Action {
	var actions []Action
	net := &p.Network
	for _, c := range net.FloatingCables {
		for _, s := range net.Switches {
			actions = append(actions, Action{Type: ActionConnectFloating, Player: p.ID, SourceKind: KindCable, Source: c.ID,
				TargetKind: KindSwitch, Target: s.ID, Desc: fmt.Sprintf("Connect %s to %s", c.String(), s.String())})
		}
	}
	for _, pc := range net.FloatingComputers {
		for _, c := range net.Cables() {
			if c.HasRoom() {
				actions = append(actions, Action{Type: ActionConnectFloating, Player: p.ID, SourceKind: KindComputer, Source: pc.ID,
					TargetKind: KindCable, Target: c.ID, Desc: fmt.Sprintf("Connect %s to %s", pc, c.String())})
			}
		}
	}
	return actions
}

func attackActions(p, opp *Player) []Action {
	var actions []Action
	for _, c := range uniqueBySubtype(p.Hand) {
		switch {
		case c.Subtype == SubAudit:
			if opp.Network.TotalComputers() > 0 {
				actions = append(actions, Action{Type: ActionStartAudit, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
					TargetPlayer: opp.ID, Desc: fmt.Sprintf("Audit %s", opp.Name)})
			}
		case IsIssue(c.Subtype):
			opp.Network.Walk(func(r NodeRef) {
				if r.Node.HasIssue(c.Subtype) {
					return
				}
				actions = append(actions, Action{Type: ActionPlayAttack, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
					Target: r.Node.ID, TargetKind: r.Kind, TargetPlayer: opp.ID,
					Desc: fmt.Sprintf("%s %s's %s", c.Name, opp.Name, r.Node)})
			})
		}
	}
	return actions
}

func resolutionActions(p *Player) []Action {
	var actions []Action
	for _, c := range uniqueBySubtype(p.Hand) {
		if c.Type != CardTypeResolution {
			continue
		}
		p.Network.Walk(func(r NodeRef) {
			if resolvable(r.Node, c.Subtype) {
				actions = append(actions, Action{Type: ActionPlayResolution, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
					Target: r.Node.ID, TargetKind: r.Kind, TargetPlayer: p.ID, Desc: fmt.Sprintf("%s on %s", c.Name, r.Node)})
			}
		})
	}
	return actions
}

func classificationActions(p, opp *Player) []Action {
	var actions []Action
	full := len(p.Classifications) >= MaxClassifications
	swaps := []NodeID{NoNode}
	if full {
		swaps = nil
		for _, pc := range p.Classifications {
			swaps = append(swaps, pc.ID)
		}
	}
	for _, c := range uniqueBySubtype(p.Hand) {
		if c.Type != CardTypeClassification {
			continue
		}
		if IsSteal(c.Subtype) {
			if opp.StealProtected() {
				continue
			}
			for _, target := range opp.Classifications {
				for _, swap := range swaps {
					desc := fmt.Sprintf("%s: steal %s", c.Name, target)
					if swap != NoNode {
						desc += fmt.Sprintf(" (discard #%d)", swap)
					}
					actions = append(actions, Action{Type: ActionPlayClassification, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
						Target: target.ID, TargetKind: KindClassification, TargetPlayer: opp.ID, DiscardClass: swap, Desc: desc})
				}
			}
			continue
		}
		for _, swap := range swaps {
			desc := fmt.Sprintf("Play %s", c.Name)
			if swap != NoNode {
				desc += fmt.Sprintf(" (discard #%d)", swap)
			}
			actions = append(actions, Action{Type: ActionPlayClassification, Player: p.ID, CardID: c.ID, Subtype: c.Subtype,
				DiscardClass: swap, Desc: desc})
		}
	}
	return actions
}

// Apply dispatches an action to the matching engine method.
func (e *Engine) Apply(a Action) bool {
	switch a.Type {
	case ActionPlaySwitch:
		return e.PlaySwitch(a.Player, a.CardID)
	case ActionPlayCable:
		return e.PlayCable(a.Player, a.CardID, a.Target)
	case ActionPlayComputer:
		return e.PlayComputer(a.Player, a.CardID, a.Target)
	case ActionPlayAttack:
		return e.PlayAttack(a.Player, a.CardID, a.Target, a.TargetPlayer)
	case ActionPlayResolution:
		return e.PlayResolution(a.Player, a.CardID, a.Target)
	case ActionPlayClassification:
		return e.PlayClassification(a.Player, a.CardID, a.Target, a.DiscardClass)
	case ActionMoveEquipment:
		return e.MoveEquipment(a.Player, a.SourceKind, a.Source, a.TargetKind, a.Target)
	case ActionConnectFloating:
		return e.ConnectFloating(a.Player, a.SourceKind, a.Source, a.Target)
	case ActionDiscard:
		return e.DiscardCard(a.Player, a.CardID)
	case ActionEnterDiscardPhase:
		return e.EnterDiscardPhase(a.Player)
	case ActionStartAudit:
		return e.StartAudit(a.Player, a.CardID, a.TargetPlayer)
	case ActionRespondAudit:
		return e.RespondToAudit(a.Player, a.CardID)
	case ActionPassAudit:
		return e.PassAudit(a.Player)
	case ActionToggleAuditSelection:
		return e.ToggleAuditComputerSelection(a.Player, a.Target)
	case ActionConfirmAuditSelection:
		return e.ConfirmAuditSelection(a.Player)
	case ActionRespondHeadHunter:
		return e.RespondToHeadHunterBattle(a.Player, a.CardID)
	case ActionPassHeadHunter:
		return e.PassHeadHunterBattle(a.Player)
	case ActionEndPhase:
		return e.EndPhase(a.Player)
	}
	return e.reject(a.Player, "unknown action %d", a.Type)
}

func uniqueBySubtype(cards []Card) []Card {
	seen := make(map[Subtype]bool)
	var out []Card
	for _, c := range cards {
		if !seen[c.Subtype] {
			seen[c.Subtype] = true
			out = append(out, c)
		}
	}
	return out
}

func hasCard(cards []Card, id CardID) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
