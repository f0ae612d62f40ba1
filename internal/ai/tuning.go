package ai

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuningYAML []byte

// Tuning holds every numeric parameter of the opponent engine.
type Tuning struct {
	Weights      Weights            `yaml:"weights"`
	Adjust       Adjust             `yaml:"adjust"`
	Loop         Loop               `yaml:"loop"`
	Counter      Counter            `yaml:"counter"`
	Difficulties map[string]Profile `yaml:"difficulties"`
}

// Adjust controls how base weights shift with the game situation.
type Adjust struct {
	ScoreMargin      int     `yaml:"score_margin"`
	TrailingDenial   float64 `yaml:"trailing_denial"`
	TrailingRisk     float64 `yaml:"trailing_risk"`
	LeadingStability float64 `yaml:"leading_stability"`
	NearWinTurns     int     `yaml:"near_win_turns"`
	NearWinGain      float64 `yaml:"near_win_gain"`
	ThreatDenial     float64 `yaml:"threat_denial"`
}

// Loop bounds the per-turn selection loop.
type Loop struct {
	WorthlessFloor         float64 `yaml:"worthless_floor"`
	DeadDiscardValue       float64 `yaml:"dead_discard_value"`
	MaxConsecutiveFailures int     `yaml:"max_consecutive_failures"`
	MaxDistinctFailedTypes int     `yaml:"max_distinct_failed_types"`
	MaxSteps               int     `yaml:"max_steps"`
	LookaheadWidth         int     `yaml:"lookahead_width"`
	LookaheadDiscount      float64 `yaml:"lookahead_discount"`
}

// Counter parameterizes the battle counter decision.
type Counter struct {
	Threshold float64 `yaml:"threshold"`
	DepthCost float64 `yaml:"depth_cost"`
}

// ParseTuning parses tuning YAML and checks that every tier is present.
func ParseTuning(data []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning YAML: %w", err)
	}
	for _, d := range Difficulties {
		if _, ok := t.Difficulties[d.String()]; !ok {
			return Tuning{}, fmt.Errorf("tuning: missing difficulty %q", d)
		}
	}
	if t.Loop.MaxSteps <= 0 {
		return Tuning{}, fmt.Errorf("tuning: loop.max_steps must be positive")
	}
	if t.Loop.MaxConsecutiveFailures <= 0 || t.Loop.MaxDistinctFailedTypes <= 0 {
		return Tuning{}, fmt.Errorf("tuning: failure ceilings must be positive")
	}
	return t, nil
}

// LoadTuning reads a tuning file from disk.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// DefaultTuning returns the embedded tuning.
func DefaultTuning() Tuning {
	t, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded tuning.yaml: %v", err))
	}
	return t
}

// Profile returns the parameters of a difficulty tier.
func (t Tuning) Profile(d Difficulty) Profile {
	return t.Difficulties[d.String()]
}
