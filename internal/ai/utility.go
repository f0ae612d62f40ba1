package ai

import (
	"cmp"
	"slices"

	"github.com/peterkuimelis/netwars/internal/game"
)

// Components are the unweighted utility terms of one action.
type Components struct {
	Gain       float64 // change in own yield
	Denial     float64 // yield and prospects taken from the other player
	Stability  float64 // own network made less disabled
	Future     float64 // placements that enable later yield
	Risk       float64 // chance the play is undone or wasted
	Redundancy float64 // yield spread across switches
	Class      float64 // classification value gained
}

// Score combines the components with w. Risk counts against the action.
func (c Components) Score(w Weights) float64 {
	return c.Gain*w.Gain + c.Denial*w.Denial + c.Stability*w.Stability +
		c.Future*w.Future + c.Redundancy*w.Redundancy + c.Class*w.Class - c.Risk*w.Risk
}

// Candidate is a legal action with its evaluation.
type Candidate struct {
	Action  game.Action
	Parts   Components
	Utility float64
}

// position is the part of a state the evaluator compares before and after.
type position struct {
	mine, theirs NetworkAnalysis
	potential    float64
	theirPot     float64
}

func measure(gs *game.GameState, player int, handComputers, handCables, handSwitches int) position {
	me := gs.Players[player]
	them := gs.Players[gs.Opponent(player)]
	pos := position{mine: AnalyzeNetwork(&me.Network), theirs: AnalyzeNetwork(&them.Network)}
	pos.potential = potential(pos.mine,
		handComputers+len(me.AuditedComputers)+len(me.Network.FloatingComputers),
		handCables+len(me.Network.FloatingCables), handSwitches)
	pos.theirPot = potential(pos.theirs,
		len(them.AuditedComputers)+len(them.Network.FloatingComputers),
		len(them.Network.FloatingCables), 0)
	return pos
}

// potential values equipment that can still be turned into yield.
func potential(na NetworkAnalysis, computers, cables, switches int) float64 {
	v := 0.5 * float64(min(na.FreeCapacity, computers))
	if na.EnabledSwitches > 0 {
		v += 0.4 + 0.3*float64(min(cables, 2))
	} else if switches > 0 {
		v += 0.1
	}
	return v - 0.1*float64(na.Floating)
}

// handCounts counts the equipment player holds, minus the card a is about to
// use. Draws that end the turn on a fork must not be visible to the
// evaluator, so the pre-action hand is the reference.
func handCounts(p *game.Player, a game.Action) (computers, cables, switches int) {
	for _, c := range p.Hand {
		if c.ID == a.CardID {
			continue
		}
		switch {
		case c.Subtype == game.SubComputer:
			computers++
		case game.IsCable(c.Subtype):
			cables++
		case c.Subtype == game.SubSwitch:
			switches++
		}
	}
	return
}

// rank evaluates every legal turn action of player on e, best first. With
// depth > 0 the best few are replayed on a fork and credited with a
// discounted share of their best follow-up.
func (o *Opponent) rank(e *game.Engine, player int, w Weights, depth int) []Candidate {
	gs := e.State()
	p := gs.Players[player]
	hand := AnalyzeHand(gs, player)
	hc, hcab, hsw := handCounts(p, game.Action{})
	before := measure(gs, player, hc, hcab, hsw)

	var out, fallback []Candidate
	for _, a := range e.LegalActions(player) {
		switch a.Type {
		case game.ActionEndPhase, game.ActionEnterDiscardPhase:
			continue
		case game.ActionDiscard:
			if hand.IsDead(a.CardID) {
				out = append(out, Candidate{Action: a, Utility: o.tuning.Loop.DeadDiscardValue})
			} else {
				fallback = append(fallback, Candidate{Action: a, Utility: -o.cardValue(gs, player, a.Subtype)})
			}
			continue
		}
		parts, ok := o.evaluate(e, player, a, before)
		if !ok {
			continue
		}
		out = append(out, Candidate{Action: a, Parts: parts, Utility: parts.Score(w)})
	}
	if len(out) == 0 {
		out = fallback
	}
	sortCandidates(out)

	if depth > 0 {
		width := min(o.tuning.Loop.LookaheadWidth, len(out))
		for i := 0; i < width; i++ {
			if out[i].Action.Type == game.ActionDiscard {
				continue
			}
			out[i].Utility += o.tuning.Loop.LookaheadDiscount * o.followUp(e, player, out[i].Action, w, depth-1)
		}
		sortCandidates(out)
	}
	return out
}

func sortCandidates(cs []Candidate) {
	slices.SortStableFunc(cs, func(a, b Candidate) int {
		return cmp.Compare(b.Utility, a.Utility)
	})
}

// followUp is the best utility player can reach after a on a fork, or 0 when
// the turn is over by then.
func (o *Opponent) followUp(e *game.Engine, player int, a game.Action, w Weights, depth int) float64 {
	f := e.Fork()
	if !f.Apply(a) {
		return 0
	}
	gs := f.State()
	if gs.Over() || gs.Interrupt != nil || gs.CurrentPlayer != player || gs.Phase != game.PhaseMoves {
		return 0
	}
	next := o.rank(f, player, w, depth)
	if len(next) == 0 || next[0].Utility <= 0 {
		return 0
	}
	return next[0].Utility
}

// evaluate scores one non-discard action. Audits and steals are estimated
// from public information; everything else is replayed on a fork and
// measured.
func (o *Opponent) evaluate(e *game.Engine, player int, a game.Action, before position) (Components, bool) {
	gs := e.State()
	switch {
	case a.Type == game.ActionStartAudit:
		return o.evaluateAudit(gs, player), true
	case a.Type == game.ActionPlayClassification && game.IsSteal(a.Subtype):
		return o.evaluateSteal(gs, player, a), true
	}

	f := e.Fork()
	if !f.Apply(a) {
		return Components{}, false
	}
	hc, hcab, hsw := handCounts(gs.Players[player], a)
	after := measure(f.State(), player, hc, hcab, hsw)

	var c Components
	c.Gain = float64(after.mine.Scoring - before.mine.Scoring)
	c.Denial = float64(before.theirs.Scoring-after.theirs.Scoring) + 0.5*(before.theirPot-after.theirPot)
	c.Stability = 3*(before.mine.Vulnerability-after.mine.Vulnerability) +
		0.5*float64(before.mine.Issues-after.mine.Issues)
	c.Future = after.potential - before.potential
	c.Redundancy = after.mine.Redundancy - before.mine.Redundancy

	switch a.Type {
	case game.ActionPlayAttack:
		c.Risk = 0.5 * o.fixLikelihood(gs, player, a.Subtype)
	case game.ActionPlayClassification:
		c.Class = o.classValue(gs, player, a.Subtype)
		if a.DiscardClass != game.NoNode {
			if old, ok := gs.Players[player].Classification(a.DiscardClass); ok {
				c.Class -= o.classValue(gs, player, old.Card.Subtype)
			}
		}
	case game.ActionPlayCable, game.ActionPlayComputer, game.ActionMoveEquipment, game.ActionConnectFloating:
		// Placing under an issue is wasted until it is fixed.
		if ref, ok := f.State().Players[player].Network.Find(a.Target); ok && ref.Node.Disabled {
			c.Risk = 0.3
		}
	}
	return c, true
}

// evaluateAudit values taking half of the other player's computers, against
// the chance that a Hacked in their hand blocks it.
func (o *Opponent) evaluateAudit(gs *game.GameState, player int) Components {
	them := gs.Players[gs.Opponent(player)]
	na := AnalyzeNetwork(&them.Network)
	stake := (na.Total + 1) / 2
	hit := min(stake, na.Scoring)

	var c Components
	c.Denial = float64(hit) + 0.3*float64(stake-hit)
	block := o.likelihood(gs, player, game.SubHacked)
	if gs.Players[player].CountInHand(game.SubSecured) > 0 {
		block *= 0.3
	}
	c.Risk = block * c.Denial
	return c
}

// evaluateSteal values a head-hunter or seal-the-deal play.
func (o *Opponent) evaluateSteal(gs *game.GameState, player int, a game.Action) Components {
	me := gs.Players[player]
	opp := gs.Opponent(player)
	target, ok := gs.Players[opp].Classification(a.Target)
	if !ok {
		return Components{}
	}
	var c Components
	sub := target.Card.Subtype
	if !me.HasClassification(sub) || a.DiscardClass != game.NoNode {
		c.Class = o.classValue(gs, player, sub)
	}
	c.Denial = 0.5 * o.classValue(gs, opp, sub)
	if a.DiscardClass != game.NoNode {
		if old, ok := me.Classification(a.DiscardClass); ok {
			c.Class -= o.classValue(gs, player, old.Card.Subtype)
		}
	}
	if a.Subtype == game.SubHeadHunter {
		c.Risk = o.likelihood(gs, player, game.SubHeadHunter) * (c.Class + c.Denial)
	}
	return c
}

// classValue is what holding a classification of subtype s is worth to owner.
func (o *Opponent) classValue(gs *game.GameState, owner int, s game.Subtype) float64 {
	p := gs.Players[owner]
	if p.HasClassification(s) {
		// A pair only adds steal protection.
		return 0.4
	}
	if s == game.SubFieldTech {
		return 1
	}
	issue, ok := game.ClearedBy(s)
	if !ok {
		return 0
	}
	v := 0.5 + 0.5*float64(p.Network.IssueCount(issue))
	if n := o.comp.Count(issue); n > 0 {
		v += 0.5 * float64(o.model.Observed(issue)) / float64(n)
	}
	return v
}

// cardValue is a rough keep value, used to pick the least useful discard.
func (o *Opponent) cardValue(gs *game.GameState, player int, s game.Subtype) float64 {
	info, _ := game.LookupSubtype(s)
	switch {
	case s == game.SubComputer || s == game.SubSwitch:
		return 1
	case game.IsCable(s):
		return 0.8
	case isCounterCard(s):
		return 0.9
	case info.Type == game.CardTypeClassification:
		return 0.7 + 0.1*o.classValue(gs, player, s)
	}
	return 0.5
}

// fixLikelihood is the chance the other player can undo an issue of subtype s.
func (o *Opponent) fixLikelihood(gs *game.GameState, player int, s game.Subtype) float64 {
	p := o.likelihood(gs, player, game.SubHelpdesk)
	if res, ok := game.ResolutionFor(s); ok {
		q := o.likelihood(gs, player, res)
		p = p + q - p*q
	}
	return p
}

// likelihood asks the model whether the other player holds a card of s.
func (o *Opponent) likelihood(gs *game.GameState, player int, s game.Subtype) float64 {
	opp := gs.Opponent(player)
	return o.model.CounterLikelihood(opp, s, len(gs.Players[opp].Hand), gs.Players[player].Hand, o.comp, o.profile.CounterAccuracy)
}

// isCounterCard reports whether s can extend a battle chain.
func isCounterCard(s game.Subtype) bool {
	return s == game.SubHacked || s == game.SubSecured || s == game.SubHeadHunter
}
