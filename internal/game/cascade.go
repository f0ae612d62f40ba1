package game

import "fmt"

// Recompute re-derives Disabled for every node, top-down. A node is disabled
// when it carries an issue or its parent is disabled. Floating cables and
// computers have no parent.
func (n *PlayerNetwork) Recompute() {
	for _, s := range n.Switches {
		s.Disabled = len(s.Issues) > 0
		for _, c := range s.Cables {
			recomputeCable(c, s.Disabled)
		}
	}
	for _, c := range n.FloatingCables {
		recomputeCable(c, false)
	}
	for _, pc := range n.FloatingComputers {
		pc.Disabled = len(pc.Issues) > 0
	}
}

func recomputeCable(c *CableNode, parentDisabled bool) {
	c.Disabled = parentDisabled || len(c.Issues) > 0
	for _, pc := range c.Computers {
		pc.Disabled = c.Disabled || len(pc.Issues) > 0
	}
}

// Verify checks the derived-state invariants: every Disabled flag matches the
// cascade rule and no cable holds more computers than it allows.
func (n *PlayerNetwork) Verify() error {
	var err error
	n.Walk(func(r NodeRef) {
		if err != nil {
			return
		}
		parentDisabled := false
		switch r.Kind {
		case KindCable:
			parentDisabled = r.Switch != nil && r.Switch.Disabled
		case KindComputer:
			parentDisabled = r.Cable != nil && r.Cable.Disabled
		}
		want := len(r.Node.Issues) > 0 || parentDisabled
		if r.Node.Disabled != want {
			err = fmt.Errorf("%s: disabled=%v, want %v", r.Node, r.Node.Disabled, want)
			return
		}
		if r.Kind == KindCable && len(r.Cable.Computers) > r.Cable.MaxComputers {
			err = fmt.Errorf("%s holds %d computers, max %d", r.Node, len(r.Cable.Computers), r.Cable.MaxComputers)
		}
	})
	return err
}

// disabledSet snapshots which nodes are currently disabled.
func (n *PlayerNetwork) disabledSet() map[NodeID]bool {
	set := make(map[NodeID]bool)
	n.Walk(func(r NodeRef) {
		if r.Node.Disabled {
			set[r.Node.ID] = true
		}
	})
	return set
}

// diffDisabled returns how many nodes went enabled→disabled and
// disabled→enabled relative to before.
func (n *PlayerNetwork) diffDisabled(before map[NodeID]bool) (disabled, enabled int) {
	n.Walk(func(r NodeRef) {
		was := before[r.Node.ID]
		switch {
		case r.Node.Disabled && !was:
			disabled++
		case !r.Node.Disabled && was:
			enabled++
		}
	})
	return disabled, enabled
}

// ApplyAttack attaches an attack card to a node and cascades. It returns the
// number of nodes that became disabled.
func (n *PlayerNetwork) ApplyAttack(id NodeID, attack Card) (int, error) {
	if !IsIssue(attack.Subtype) {
		return 0, fmt.Errorf("%s cannot be attached to a node", attack.Name)
	}
	ref, ok := n.Find(id)
	if !ok {
		return 0, fmt.Errorf("node #%d not found", id)
	}
	if ref.Node.HasIssue(attack.Subtype) {
		return 0, fmt.Errorf("%s already has %s", ref.Node, attack.Name)
	}
	before := n.disabledSet()
	ref.Node.Issues = append(ref.Node.Issues, attack)
	n.Recompute()
	disabled, _ := n.diffDisabled(before)
	return disabled, nil
}

// ApplyResolution removes the issues a resolution card clears from one node
// and cascades. Helpdesk clears every issue; the others clear one issue of
// their matching subtype. It returns the removed issue cards and the number
// of nodes that became enabled.
func (n *PlayerNetwork) ApplyResolution(id NodeID, res Card) ([]Card, int, error) {
	if res.Type != CardTypeResolution {
		return nil, 0, fmt.Errorf("%s is not a resolution", res.Name)
	}
	ref, ok := n.Find(id)
	if !ok {
		return nil, 0, fmt.Errorf("node #%d not found", id)
	}

	var removed, keep []Card
	for _, is := range ref.Node.Issues {
		if Resolves(res.Subtype, is.Subtype) && (res.Subtype == SubHelpdesk || len(removed) == 0) {
			removed = append(removed, is)
			continue
		}
		keep = append(keep, is)
	}
	if len(removed) == 0 {
		return nil, 0, fmt.Errorf("%s has no issue that %s resolves", ref.Node, res.Name)
	}

	before := n.disabledSet()
	ref.Node.Issues = keep
	n.Recompute()
	_, enabled := n.diffDisabled(before)
	return removed, enabled, nil
}

// ClearIssues removes every issue of subtype s across the network, cascades,
// and returns the removed cards.
func (n *PlayerNetwork) ClearIssues(s Subtype) []Card {
	var removed []Card
	n.Walk(func(r NodeRef) {
		var keep []Card
		for _, is := range r.Node.Issues {
			if is.Subtype == s {
				removed = append(removed, is)
				continue
			}
			keep = append(keep, is)
		}
		r.Node.Issues = keep
	})
	n.Recompute()
	return removed
}

// IssueCount counts attached issues of subtype s (all subtypes for "").
func (n *PlayerNetwork) IssueCount(s Subtype) int {
	count := 0
	n.Walk(func(r NodeRef) {
		for _, is := range r.Node.Issues {
			if s == "" || is.Subtype == s {
				count++
			}
		}
	})
	return count
}

// SubtreeScoring counts the enabled, connected computers at or below a node.
// It is the yield an attack on that node would deny.
func (n *PlayerNetwork) SubtreeScoring(id NodeID) int {
	ref, ok := n.Find(id)
	if !ok || ref.Floating() {
		return 0
	}
	count := 0
	switch ref.Kind {
	case KindSwitch:
		for _, c := range ref.Switch.Cables {
			for _, pc := range c.Computers {
				if !pc.Disabled {
					count++
				}
			}
		}
	case KindCable:
		for _, pc := range ref.Cable.Computers {
			if !pc.Disabled {
				count++
			}
		}
	case KindComputer:
		if !ref.Node.Disabled {
			count++
		}
	}
	return count
}
