package game

import (
	"fmt"

	"github.com/peterkuimelis/netwars/internal/log"
)

// PlaySwitch places a switch from the hand as a new root.
func (e *Engine) PlaySwitch(player int, cardID CardID) bool {
	if reason := e.checkMove(player, true); reason != "" {
		return e.reject(player, "cannot play switch: %s", reason)
	}
	card, ok := e.state.Players[player].HandCard(cardID)
	if !ok || card.Subtype != SubSwitch {
		return e.reject(player, "card %d is not a switch in your hand", cardID)
	}

	t := e.begin(player)
	p := t.gs.Players[player]
	p.RemoveFromHand(cardID)
	node := &SwitchNode{PlacedCard: PlacedCard{ID: t.gs.NextNodeID(), Card: card}}
	p.Network.Switches = append(p.Network.Switches, node)
	p.Network.Recompute()
	spend(t.gs, true)
	t.emit(log.NewPlaceEquipmentEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), "as a new switch"))
	return e.commit(t)
}

// PlayCable places a cable under one of the player's switches, or floating
// when target is NoNode.
func (e *Engine) PlayCable(player int, cardID CardID, target NodeID) bool {
	if reason := e.checkMove(player, true); reason != "" {
		return e.reject(player, "cannot play cable: %s", reason)
	}
	p := e.state.Players[player]
	card, ok := p.HandCard(cardID)
	if !ok || !IsCable(card.Subtype) {
		return e.reject(player, "card %d is not a cable in your hand", cardID)
	}
	if target != NoNode {
		if ref, ok := p.Network.Find(target); !ok || ref.Kind != KindSwitch {
			return e.reject(player, "#%d is not one of your switches", target)
		}
	}

	t := e.begin(player)
	p = t.gs.Players[player]
	p.RemoveFromHand(cardID)
	node := &CableNode{
		PlacedCard:   PlacedCard{ID: t.gs.NextNodeID(), Card: card},
		MaxComputers: CableCapacity(card.Subtype),
	}
	if err := p.Network.attachCable(node, target); err != nil {
		return e.reject(player, "cannot play cable: %v", err)
	}
	p.Network.Recompute()
	spend(t.gs, true)
	t.emit(log.NewPlaceEquipmentEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), placement(p, target)))
	return e.commit(t)
}

// PlayComputer places a computer from the hand or the audited pool on one of
// the player's cables, or floating when target is NoNode.
func (e *Engine) PlayComputer(player int, cardID CardID, target NodeID) bool {
	if reason := e.checkMove(player, true); reason != "" {
		return e.reject(player, "cannot play computer: %s", reason)
	}
	p := e.state.Players[player]
	card, fromHand := p.HandCard(cardID)
	if !fromHand {
		var audited bool
		for _, c := range p.AuditedComputers {
			if c.ID == cardID {
				card, audited = c, true
			}
		}
		if !audited {
			return e.reject(player, "card %d is not a computer you can play", cardID)
		}
	}
	if card.Subtype != SubComputer {
		return e.reject(player, "card %d is not a computer", cardID)
	}
	if target != NoNode {
		ref, ok := p.Network.Find(target)
		if !ok || ref.Kind != KindCable {
			return e.reject(player, "#%d is not one of your cables", target)
		}
		if !ref.Cable.HasRoom() {
			return e.reject(player, "%s is full", ref.Node)
		}
	}

	t := e.begin(player)
	p = t.gs.Players[player]
	if fromHand {
		p.RemoveFromHand(cardID)
	} else {
		p.removeAudited(cardID)
	}
	node := &PlacedCard{ID: t.gs.NextNodeID(), Card: card}
	if err := p.Network.attachComputer(node, target); err != nil {
		return e.reject(player, "cannot play computer: %v", err)
	}
	p.Network.Recompute()
	spend(t.gs, true)
	t.emit(log.NewPlaceEquipmentEvent(t.gs.Turn, t.phase(), player, card.Name, string(card.Subtype), placement(p, target)))
	return e.commit(t)
}

// MoveEquipment re-parents an attached cable or computer. A cable moves to
// another switch (targetKind KindSwitch) or floats (KindNone); a computer
// moves to another cable with room (KindCable) or floats. Issues travel with
// the node and the cascade is re-derived.
func (e *Engine) MoveEquipment(player int, sourceKind NodeKind, source NodeID, targetKind NodeKind, target NodeID) bool {
	if reason := e.checkMove(player, true); reason != "" {
		return e.reject(player, "cannot move equipment: %s", reason)
	}
	net := &e.state.Players[player].Network
	ref, ok := net.Find(source)
	if !ok || ref.Kind != sourceKind {
		return e.reject(player, "%s #%d is not on your network", sourceKind, source)
	}
	if isLoose(net, source) {
		return e.reject(player, "%s is floating; connect it instead", ref.Node)
	}
	if reason := checkDestination(net, ref, targetKind, target); reason != "" {
		return e.reject(player, "cannot move %s: %s", ref.Node, reason)
	}

	t := e.begin(player)
	p := t.gs.Players[player]
	name := ref.Node.Card.Name
	sub := ref.Node.Card.Subtype
	if err := relocate(&p.Network, sourceKind, source, target); err != nil {
		return e.reject(player, "cannot move equipment: %v", err)
	}
	spend(t.gs, true)
	t.emit(log.NewMoveEquipmentEvent(t.gs.Turn, t.phase(), player, name, string(sub), placement(p, target)))
	return e.commit(t)
}

// ConnectFloating attaches a floating cable to a switch or a floating computer
// to a cable. It costs no move.
func (e *Engine) ConnectFloating(player int, sourceKind NodeKind, source NodeID, target NodeID) bool {
	if reason := e.checkTurn(player); reason != "" {
		return e.reject(player, "cannot connect: %s", reason)
	}
	if e.state.Phase != PhaseMoves {
		return e.reject(player, "cannot connect in the %s phase", e.state.Phase)
	}
	net := &e.state.Players[player].Network
	ref, ok := net.Find(source)
	if !ok || ref.Kind != sourceKind || !isLoose(net, source) {
		return e.reject(player, "%s #%d is not floating on your network", sourceKind, source)
	}
	targetKind := KindSwitch
	if sourceKind == KindComputer {
		targetKind = KindCable
	}
	if target == NoNode {
		return e.reject(player, "connect needs a %s target", targetKind)
	}
	if reason := checkDestination(net, ref, targetKind, target); reason != "" {
		return e.reject(player, "cannot connect %s: %s", ref.Node, reason)
	}

	t := e.begin(player)
	p := t.gs.Players[player]
	name := ref.Node.Card.Name
	sub := ref.Node.Card.Subtype
	if err := relocate(&p.Network, sourceKind, source, target); err != nil {
		return e.reject(player, "cannot connect: %v", err)
	}
	t.emit(log.NewConnectEvent(t.gs.Turn, t.phase(), player, name, string(sub), placement(p, target)))
	return e.commit(t)
}

// isLoose reports whether a node sits directly in a floating list.
func isLoose(n *PlayerNetwork, id NodeID) bool {
	for _, c := range n.FloatingCables {
		if c.ID == id {
			return true
		}
	}
	for _, pc := range n.FloatingComputers {
		if pc.ID == id {
			return true
		}
	}
	return false
}

// checkDestination validates a new parent for ref.
func checkDestination(n *PlayerNetwork, ref NodeRef, targetKind NodeKind, target NodeID) string {
	switch ref.Kind {
	case KindCable:
		if targetKind == KindNone && target == NoNode {
			return ""
		}
		if targetKind != KindSwitch {
			return "cables attach to switches"
		}
		dst, ok := n.Find(target)
		if !ok || dst.Kind != KindSwitch {
			return fmt.Sprintf("#%d is not one of your switches", target)
		}
		if ref.Switch != nil && ref.Switch.ID == target {
			return "it is already on that switch"
		}
	case KindComputer:
		if targetKind == KindNone && target == NoNode {
			return ""
		}
		if targetKind != KindCable {
			return "computers attach to cables"
		}
		dst, ok := n.Find(target)
		if !ok || dst.Kind != KindCable {
			return fmt.Sprintf("#%d is not one of your cables", target)
		}
		if ref.Cable != nil && ref.Cable.ID == target {
			return "it is already on that cable"
		}
		if !dst.Cable.HasRoom() {
			return fmt.Sprintf("%s is full", dst.Node)
		}
	default:
		return fmt.Sprintf("a %s cannot be moved", ref.Kind)
	}
	return ""
}

// relocate detaches a node and attaches it under target, then recomputes.
func relocate(n *PlayerNetwork, kind NodeKind, id, target NodeID) error {
	switch kind {
	case KindCable:
		c := n.detachCable(id)
		if c == nil {
			return fmt.Errorf("cable #%d not found", id)
		}
		if err := n.attachCable(c, target); err != nil {
			return err
		}
	case KindComputer:
		pc := n.detachComputer(id)
		if pc == nil {
			return fmt.Errorf("computer #%d not found", id)
		}
		if err := n.attachComputer(pc, target); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot relocate a %s", kind)
	}
	n.Recompute()
	return nil
}

// placement describes where a node went, for the game log.
func placement(p *Player, target NodeID) string {
	if target == NoNode {
		return "floating"
	}
	if ref, ok := p.Network.Find(target); ok {
		return "on " + ref.Node.String()
	}
	return fmt.Sprintf("on #%d", target)
}
