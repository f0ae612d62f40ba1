package ai

import "github.com/peterkuimelis/netwars/internal/game"

// NetworkAnalysis summarizes one player's equipment graph.
type NetworkAnalysis struct {
	Connected        int // computers on a cable that sits on a switch
	Total            int // every computer, floating included
	Scoring          int // connected and enabled
	EnabledSwitches  int
	DisabledSwitches int
	EnabledCables    int
	DisabledCables   int
	Floating         int // loose cables and computers plus computers on loose cables
	FreeCapacity     int // open computer slots on enabled, connected cables
	Issues           int
	// Redundancy is 0 when all yield hangs off one switch and approaches 1 as
	// it spreads over independent switches.
	Redundancy float64
	// Vulnerability is the disabled share of all placements.
	Vulnerability float64
}

// AnalyzeNetwork computes the NetworkAnalysis of n.
func AnalyzeNetwork(n *game.PlayerNetwork) NetworkAnalysis {
	var na NetworkAnalysis
	nodes, disabled, maxShare := 0, 0, 0

	n.Walk(func(r game.NodeRef) {
		nodes++
		if r.Node.Disabled {
			disabled++
		}
		na.Issues += len(r.Node.Issues)
		switch r.Kind {
		case game.KindSwitch:
			if r.Node.Disabled {
				na.DisabledSwitches++
			} else {
				na.EnabledSwitches++
			}
		case game.KindCable:
			if r.Node.Disabled {
				na.DisabledCables++
			} else {
				na.EnabledCables++
			}
			if r.Floating() {
				na.Floating++
			} else if !r.Node.Disabled {
				na.FreeCapacity += r.Cable.MaxComputers - len(r.Cable.Computers)
			}
		case game.KindComputer:
			na.Total++
			if r.Floating() {
				na.Floating++
				return
			}
			na.Connected++
			if !r.Node.Disabled {
				na.Scoring++
			}
		}
	})

	for _, s := range n.Switches {
		share := n.SubtreeScoring(s.ID)
		if share > maxShare {
			maxShare = share
		}
	}
	if na.Scoring > 0 {
		na.Redundancy = 1 - float64(maxShare)/float64(na.Scoring)
	}
	if nodes > 0 {
		na.Vulnerability = float64(disabled) / float64(nodes)
	}
	return na
}

// Family groups hand cards by what they do.
type Family int

const (
	FamilyEquipment Family = iota
	FamilyAttack
	FamilyAudit
	FamilyResolution
	FamilyClassification
	FamilySteal
)

func familyOf(c game.Card) Family {
	switch {
	case c.Subtype == game.SubAudit:
		return FamilyAudit
	case c.Type == game.CardTypeAttack:
		return FamilyAttack
	case c.Type == game.CardTypeResolution:
		return FamilyResolution
	case game.IsSteal(c.Subtype):
		return FamilySteal
	case c.Type == game.CardTypeClassification:
		return FamilyClassification
	}
	return FamilyEquipment
}

// HandAnalysis buckets a hand and flags cards with no legal or useful play.
type HandAnalysis struct {
	Families map[Family][]game.Card
	Dead     []game.Card
}

// IsDead reports whether the card with id is in Dead.
func (h HandAnalysis) IsDead(id game.CardID) bool {
	for _, c := range h.Dead {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AnalyzeHand classifies player's hand against the current state.
func AnalyzeHand(gs *game.GameState, player int) HandAnalysis {
	p := gs.Players[player]
	opp := gs.Players[gs.Opponent(player)]
	h := HandAnalysis{Families: make(map[Family][]game.Card)}
	for _, c := range p.Hand {
		h.Families[familyOf(c)] = append(h.Families[familyOf(c)], c)
		if isDead(c, p, opp) {
			h.Dead = append(h.Dead, c)
		}
	}
	return h
}

func isDead(c game.Card, p, opp *game.Player) bool {
	switch {
	case c.Subtype == game.SubAudit:
		return opp.Network.TotalComputers() == 0
	case game.IsIssue(c.Subtype):
		if protector, ok := game.ProtectorOf(c.Subtype); ok && opp.HasClassification(protector) {
			return true
		}
		open := false
		opp.Network.Walk(func(r game.NodeRef) {
			if !r.Node.HasIssue(c.Subtype) {
				open = true
			}
		})
		return !open
	case c.Type == game.CardTypeResolution:
		fixable := false
		p.Network.Walk(func(r game.NodeRef) {
			for _, is := range r.Node.Issues {
				if game.Resolves(c.Subtype, is.Subtype) {
					fixable = true
				}
			}
		})
		return !fixable
	case game.IsSteal(c.Subtype):
		return len(opp.Classifications) == 0 || opp.StealProtected()
	}
	return false
}
