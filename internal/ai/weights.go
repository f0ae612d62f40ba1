package ai

import "github.com/peterkuimelis/netwars/internal/game"

// Weights scale the utility components of a candidate action.
type Weights struct {
	Gain       float64 `yaml:"gain"`
	Denial     float64 `yaml:"denial"`
	Stability  float64 `yaml:"stability"`
	Future     float64 `yaml:"future"`
	Risk       float64 `yaml:"risk"`
	Redundancy float64 `yaml:"redundancy"`
	Class      float64 `yaml:"class"`
}

// TurnsToWin estimates how many end-of-turn scorings p needs at its current
// yield. A player with no yield never wins on its own.
func TurnsToWin(p *game.Player) int {
	need := game.WinningScore - p.Score
	if need <= 0 {
		return 0
	}
	yield := p.Network.ScoringComputers()
	if yield == 0 {
		return game.WinningScore
	}
	return (need + yield - 1) / yield
}

// DeriveWeights adapts base to the situation of player: the score gap, how
// close each side is to winning, what the other player has been doing and
// the difficulty tier.
func DeriveWeights(base Weights, adj Adjust, gs *game.GameState, player int, opponent Behavior, prof Profile) Weights {
	w := base
	me := gs.Players[player]
	them := gs.Players[gs.Opponent(player)]

	diff := me.Score - them.Score
	switch {
	case diff < -adj.ScoreMargin:
		w.Denial *= adj.TrailingDenial
		w.Risk *= adj.TrailingRisk
	case diff > adj.ScoreMargin:
		w.Stability *= adj.LeadingStability
		w.Redundancy *= adj.LeadingStability
	}

	if TurnsToWin(me) <= adj.NearWinTurns {
		w.Gain *= adj.NearWinGain
	}
	if TurnsToWin(them) <= adj.NearWinTurns {
		w.Denial *= adj.ThreatDenial
	}

	switch opponent {
	case BehaviorAggressive:
		w.Stability *= adj.LeadingStability
		w.Redundancy *= adj.LeadingStability
	case BehaviorBuilding:
		w.Denial *= adj.LeadingStability
	}

	w.Future *= prof.FutureBias
	w.Redundancy *= prof.FutureBias
	w.Risk *= 1 - prof.RiskTolerance/2
	return w
}
