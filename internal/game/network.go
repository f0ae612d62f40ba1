package game

import "fmt"

// PlacedCard is a card instance positioned on a network. Disabled is derived
// by Recompute and must never be set anywhere else.
type PlacedCard struct {
	ID       NodeID
	Card     Card
	Issues   []Card // attached attack cards, oldest first
	Disabled bool
}

func (pc *PlacedCard) String() string {
	if pc == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s #%d", pc.Card.Name, pc.ID)
}

// HasIssue reports whether an issue of subtype s is attached.
func (pc *PlacedCard) HasIssue(s Subtype) bool {
	for _, is := range pc.Issues {
		if is.Subtype == s {
			return true
		}
	}
	return false
}

func (pc *PlacedCard) clone() *PlacedCard {
	c := *pc
	c.Issues = append([]Card(nil), pc.Issues...)
	return &c
}

// CableNode is a placed cable and the computers attached to it.
type CableNode struct {
	PlacedCard
	MaxComputers int
	Computers    []*PlacedCard
}

// HasRoom reports whether another computer fits on the cable.
func (c *CableNode) HasRoom() bool {
	return len(c.Computers) < c.MaxComputers
}

func (c *CableNode) clone() *CableNode {
	n := &CableNode{PlacedCard: *c.PlacedCard.clone(), MaxComputers: c.MaxComputers}
	for _, pc := range c.Computers {
		n.Computers = append(n.Computers, pc.clone())
	}
	return n
}

// SwitchNode is a placed switch and the cables attached to it.
type SwitchNode struct {
	PlacedCard
	Cables []*CableNode
}

func (s *SwitchNode) clone() *SwitchNode {
	n := &SwitchNode{PlacedCard: *s.PlacedCard.clone()}
	for _, c := range s.Cables {
		n.Cables = append(n.Cables, c.clone())
	}
	return n
}

// PlayerNetwork is one player's equipment graph. Only switches root the
// scoring path; floating cables and computers never score.
type PlayerNetwork struct {
	Switches          []*SwitchNode
	FloatingCables    []*CableNode
	FloatingComputers []*PlacedCard
}

// Clone returns a deep copy of the network.
func (n *PlayerNetwork) Clone() PlayerNetwork {
	var c PlayerNetwork
	for _, s := range n.Switches {
		c.Switches = append(c.Switches, s.clone())
	}
	for _, fc := range n.FloatingCables {
		c.FloatingCables = append(c.FloatingCables, fc.clone())
	}
	for _, pc := range n.FloatingComputers {
		c.FloatingComputers = append(c.FloatingComputers, pc.clone())
	}
	return c
}

// NodeRef locates a node inside a network.
type NodeRef struct {
	Kind   NodeKind
	Node   *PlacedCard
	Switch *SwitchNode // the switch itself, or the switch above a cable/computer
	Cable  *CableNode  // the cable itself, or the cable above a computer
}

// Floating reports whether the node is outside the scoring path.
func (r NodeRef) Floating() bool {
	switch r.Kind {
	case KindCable:
		return r.Switch == nil
	case KindComputer:
		return r.Cable == nil || r.Switch == nil
	}
	return false
}

// Find locates a node by placement id.
func (n *PlayerNetwork) Find(id NodeID) (NodeRef, bool) {
	for _, s := range n.Switches {
		if s.ID == id {
			return NodeRef{Kind: KindSwitch, Node: &s.PlacedCard, Switch: s}, true
		}
		for _, c := range s.Cables {
			if ref, ok := findInCable(c, s, id); ok {
				return ref, true
			}
		}
	}
	for _, c := range n.FloatingCables {
		if ref, ok := findInCable(c, nil, id); ok {
			return ref, true
		}
	}
	for _, pc := range n.FloatingComputers {
		if pc.ID == id {
			return NodeRef{Kind: KindComputer, Node: pc}, true
		}
	}
	return NodeRef{}, false
}

func findInCable(c *CableNode, s *SwitchNode, id NodeID) (NodeRef, bool) {
	if c.ID == id {
		return NodeRef{Kind: KindCable, Node: &c.PlacedCard, Switch: s, Cable: c}, true
	}
	for _, pc := range c.Computers {
		if pc.ID == id {
			return NodeRef{Kind: KindComputer, Node: pc, Switch: s, Cable: c}, true
		}
	}
	return NodeRef{}, false
}

// Walk visits every node on the network, parents before children.
func (n *PlayerNetwork) Walk(fn func(NodeRef)) {
	for _, s := range n.Switches {
		fn(NodeRef{Kind: KindSwitch, Node: &s.PlacedCard, Switch: s})
		for _, c := range s.Cables {
			walkCable(c, s, fn)
		}
	}
	for _, c := range n.FloatingCables {
		walkCable(c, nil, fn)
	}
	for _, pc := range n.FloatingComputers {
		fn(NodeRef{Kind: KindComputer, Node: pc})
	}
}

func walkCable(c *CableNode, s *SwitchNode, fn func(NodeRef)) {
	fn(NodeRef{Kind: KindCable, Node: &c.PlacedCard, Switch: s, Cable: c})
	for _, pc := range c.Computers {
		fn(NodeRef{Kind: KindComputer, Node: pc, Switch: s, Cable: c})
	}
}

// Cables returns every cable on the network, attached ones first.
func (n *PlayerNetwork) Cables() []*CableNode {
	var result []*CableNode
	for _, s := range n.Switches {
		result = append(result, s.Cables...)
	}
	return append(result, n.FloatingCables...)
}

// Computers returns every computer on the network: connected, on floating
// cables and floating.
func (n *PlayerNetwork) Computers() []*PlacedCard {
	var result []*PlacedCard
	n.Walk(func(r NodeRef) {
		if r.Kind == KindComputer {
			result = append(result, r.Node)
		}
	})
	return result
}

// TotalComputers counts every computer on the network.
func (n *PlayerNetwork) TotalComputers() int {
	return len(n.Computers())
}

// ConnectedComputers returns computers on a cable that sits on a switch.
func (n *PlayerNetwork) ConnectedComputers() []*PlacedCard {
	var result []*PlacedCard
	for _, s := range n.Switches {
		for _, c := range s.Cables {
			result = append(result, c.Computers...)
		}
	}
	return result
}

// ScoringComputers counts enabled computers connected to a switch. This is
// the per-turn bitcoin yield.
func (n *PlayerNetwork) ScoringComputers() int {
	count := 0
	for _, pc := range n.ConnectedComputers() {
		if !pc.Disabled {
			count++
		}
	}
	return count
}

// NodeCount returns the number of placements on the network.
func (n *PlayerNetwork) NodeCount() int {
	count := 0
	n.Walk(func(NodeRef) { count++ })
	return count
}

// IsEmpty reports whether nothing has been placed.
func (n *PlayerNetwork) IsEmpty() bool {
	return len(n.Switches) == 0 && len(n.FloatingCables) == 0 && len(n.FloatingComputers) == 0
}

// --- Structural mutation ---

// detachCable removes a cable (with its computers) from wherever it sits.
func (n *PlayerNetwork) detachCable(id NodeID) *CableNode {
	for _, s := range n.Switches {
		for i, c := range s.Cables {
			if c.ID == id {
				s.Cables = append(s.Cables[:i], s.Cables[i+1:]...)
				return c
			}
		}
	}
	for i, c := range n.FloatingCables {
		if c.ID == id {
			n.FloatingCables = append(n.FloatingCables[:i], n.FloatingCables[i+1:]...)
			return c
		}
	}
	return nil
}

// detachComputer removes a computer from wherever it sits.
func (n *PlayerNetwork) detachComputer(id NodeID) *PlacedCard {
	for _, c := range n.Cables() {
		for i, pc := range c.Computers {
			if pc.ID == id {
				c.Computers = append(c.Computers[:i], c.Computers[i+1:]...)
				return pc
			}
		}
	}
	for i, pc := range n.FloatingComputers {
		if pc.ID == id {
			n.FloatingComputers = append(n.FloatingComputers[:i], n.FloatingComputers[i+1:]...)
			return pc
		}
	}
	return nil
}

// attachCable puts a cable under the given switch, or floats it for NoNode.
func (n *PlayerNetwork) attachCable(c *CableNode, switchID NodeID) error {
	if switchID == NoNode {
		n.FloatingCables = append(n.FloatingCables, c)
		return nil
	}
	ref, ok := n.Find(switchID)
	if !ok || ref.Kind != KindSwitch {
		return fmt.Errorf("switch #%d not found", switchID)
	}
	ref.Switch.Cables = append(ref.Switch.Cables, c)
	return nil
}

// attachComputer puts a computer on the given cable, or floats it for NoNode.
func (n *PlayerNetwork) attachComputer(pc *PlacedCard, cableID NodeID) error {
	if cableID == NoNode {
		n.FloatingComputers = append(n.FloatingComputers, pc)
		return nil
	}
	ref, ok := n.Find(cableID)
	if !ok || ref.Kind != KindCable {
		return fmt.Errorf("cable #%d not found", cableID)
	}
	if !ref.Cable.HasRoom() {
		return fmt.Errorf("%s is full (%d/%d)", ref.Cable.String(), len(ref.Cable.Computers), ref.Cable.MaxComputers)
	}
	ref.Cable.Computers = append(ref.Cable.Computers, pc)
	return nil
}

// removeComputers detaches the given computers and returns their cards and
// the issue cards that were attached to them.
func (n *PlayerNetwork) removeComputers(ids []NodeID) (computers, issues []Card) {
	for _, id := range ids {
		if pc := n.detachComputer(id); pc != nil {
			computers = append(computers, pc.Card)
			issues = append(issues, pc.Issues...)
		}
	}
	n.Recompute()
	return computers, issues
}
