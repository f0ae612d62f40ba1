package ai

import (
	"fmt"
	"strings"
)

// Difficulty selects a tier. Tiers share the algorithm and differ only in
// their Profile.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// Difficulties lists every tier, easiest first.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a tier name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q (want easy, medium, hard or expert)", s)
}

// Profile is the per-tier parameter set.
type Profile struct {
	LookaheadDepth  int     `yaml:"lookahead_depth"`
	Randomness      float64 `yaml:"randomness"`       // amplitude of scoring noise
	HoldBackChance  float64 `yaml:"hold_back"`        // chance to save a counter-capable card
	BluffChance     float64 `yaml:"bluff"`            // chance to ignore counter risk
	RiskTolerance   float64 `yaml:"risk_tolerance"`   // 0 = risk averse, 1 = reckless
	CounterAccuracy float64 `yaml:"counter_accuracy"` // 0 = composition prior only, 1 = full card counting
	FutureBias      float64 `yaml:"future_bias"`      // multiplier on future and redundancy weights
}
