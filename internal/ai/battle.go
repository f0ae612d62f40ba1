package ai

import (
	"cmp"
	"slices"

	"github.com/peterkuimelis/netwars/internal/game"
)

// ShouldCounter decides whether to spend a counter card in a chain. stake is
// what the chain decides, depth the number of links already played and reply
// the chance the other side answers and cancels the counter.
func (o *Opponent) ShouldCounter(stake float64, depth int, reply float64) bool {
	if stake <= 0 {
		return false
	}
	cost := 1 + o.tuning.Counter.DepthCost*float64(depth)
	expected := stake * (1 - reply*(1-o.profile.RiskTolerance))
	return expected >= o.tuning.Counter.Threshold*cost
}

// RespondToAudit extends the audit chain when the stake is worth a card.
func (o *Opponent) RespondToAudit(e *game.Engine, player int) {
	gs := e.State()
	a, ok := gs.Audit()
	if !ok || a.Step != game.AuditCounter || a.Responder() != player {
		return
	}
	card, ok := gs.Players[player].FirstInHand(a.ResponseSubtype())
	if !ok || o.rng.Float64() < o.profile.HoldBackChance {
		o.logDecision(e, player, "Pass audit", 0)
		e.PassAudit(player)
		return
	}

	na := AnalyzeNetwork(&gs.Players[a.TargetIndex].Network)
	hit := min(a.ComputersToReturn, na.Scoring)
	stake := float64(hit) + 0.3*float64(a.ComputersToReturn-hit)
	reply := game.SubHacked
	if player == a.TargetIndex {
		reply = game.SubSecured
	}
	if o.ShouldCounter(stake, len(a.Chain), o.likelihood(gs, player, reply)) {
		o.logDecision(e, player, "Respond with "+card.Name, stake)
		e.RespondToAudit(player, card.ID)
		return
	}
	o.logDecision(e, player, "Pass audit", stake)
	e.PassAudit(player)
}

// RespondToHeadHunter contests a steal when the classification is worth it.
func (o *Opponent) RespondToHeadHunter(e *game.Engine, player int) {
	gs := e.State()
	h, ok := gs.HeadHunter()
	if !ok || h.Responder() != player {
		return
	}
	card, ok := gs.Players[player].FirstInHand(game.SubHeadHunter)
	if !ok || o.rng.Float64() < o.profile.HoldBackChance {
		o.logDecision(e, player, "Pass head-hunter battle", 0)
		e.PassHeadHunterBattle(player)
		return
	}

	var stake float64
	if target, ok := gs.Players[h.DefenderIndex].Classification(h.TargetClassification); ok {
		other := gs.Opponent(player)
		stake = o.classValue(gs, player, target.Card.Subtype) + 0.5*o.classValue(gs, other, target.Card.Subtype)
	}
	if o.ShouldCounter(stake, len(h.Chain), o.likelihood(gs, player, game.SubHeadHunter)) {
		o.logDecision(e, player, "Contest with "+card.Name, stake)
		e.RespondToHeadHunterBattle(player, card.ID)
		return
	}
	o.logDecision(e, player, "Pass head-hunter battle", stake)
	e.PassHeadHunterBattle(player)
}

// SelectAuditComputers takes scoring computers first and loose ones last.
// Lower tiers shuffle the ranking with their randomness.
func (o *Opponent) SelectAuditComputers(e *game.Engine, player int) {
	gs := e.State()
	a, ok := gs.Audit()
	if !ok || a.Step != game.AuditSelection || a.AuditorIndex != player {
		return
	}
	want := o.rankAuditTargets(gs, a)

	keep := make(map[game.NodeID]bool, len(want))
	for _, id := range want {
		keep[id] = true
	}
	for _, id := range a.Selected {
		if !keep[id] {
			e.ToggleAuditComputerSelection(player, id)
		}
	}
	for _, id := range want {
		if cur, ok := e.State().Audit(); ok && !cur.IsSelected(id) {
			e.ToggleAuditComputerSelection(player, id)
		}
	}
	o.logDecision(e, player, "Confirm audit selection", float64(len(want)))
	e.ConfirmAuditSelection(player)
}

func (o *Opponent) rankAuditTargets(gs *game.GameState, a *game.AuditBattle) []game.NodeID {
	net := &gs.Players[a.TargetIndex].Network
	type pick struct {
		id    game.NodeID
		score float64
	}
	picks := make([]pick, 0, len(a.Available))
	for _, id := range a.Available {
		score := 0.0
		if ref, ok := net.Find(id); ok {
			switch {
			case !ref.Floating() && !ref.Node.Disabled:
				score = 3
			case !ref.Floating():
				score = 2
			case ref.Cable != nil:
				score = 1
			}
		}
		score += o.rng.Float64() * 2 * o.profile.Randomness
		picks = append(picks, pick{id, score})
	}
	slices.SortStableFunc(picks, func(x, y pick) int { return cmp.Compare(y.score, x.score) })

	n := min(a.ComputersToReturn, len(picks))
	ids := make([]game.NodeID, 0, n)
	for _, p := range picks[:n] {
		ids = append(ids, p.id)
	}
	return ids
}
