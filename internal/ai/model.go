package ai

import (
	"math"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// Behavior is the play style inferred from a player's recent actions.
type Behavior int

const (
	BehaviorUnknown Behavior = iota
	BehaviorAggressive
	BehaviorDefensive
	BehaviorBuilding
)

func (b Behavior) String() string {
	switch b {
	case BehaviorAggressive:
		return "aggressive"
	case BehaviorDefensive:
		return "defensive"
	case BehaviorBuilding:
		return "building"
	default:
		return "unknown"
	}
}

const (
	recentWindow    = 10
	minBehaviorSeen = 3
)

// OpponentModel counts the cards seen leaving hands and tracks what each
// player has recently done. It is fed from committed game events only, so it
// never sees a hidden hand.
type OpponentModel struct {
	observed      map[game.Subtype]int
	observedTotal int
	recent        [2][]Behavior
	// lacking marks subtypes a player showed it did not hold by passing a
	// chain it could have extended. Cleared on that player's next draw.
	lacking [2]map[game.Subtype]bool

	auditor     int
	pendingHold bool // last event was a steal that put a card into play
}

// NewOpponentModel returns an empty model.
func NewOpponentModel() *OpponentModel {
	m := &OpponentModel{observed: make(map[game.Subtype]int)}
	for i := range m.lacking {
		m.lacking[i] = make(map[game.Subtype]bool)
	}
	return m
}

// Observe folds one committed event into the model.
func (m *OpponentModel) Observe(ev log.GameEvent) {
	if ev.Player < 0 || ev.Player > 1 {
		return
	}
	sub := game.Subtype(ev.Subtype)
	stolen := m.pendingHold
	m.pendingHold = false

	switch ev.Type {
	case log.EventShuffle:
		// Discards went back into the draw pile; they are unseen again.
		m.observed = make(map[game.Subtype]int)
		m.observedTotal = 0
	case log.EventDraw:
		clear(m.lacking[ev.Player])
	case log.EventPlaceEquipment, log.EventDiscard, log.EventResolve:
		m.see(sub)
		if ev.Type == log.EventPlaceEquipment {
			m.record(ev.Player, BehaviorBuilding)
		} else if ev.Type == log.EventResolve {
			m.record(ev.Player, BehaviorDefensive)
		}
	case log.EventMoveEquipment, log.EventConnect:
		m.record(ev.Player, BehaviorBuilding)
	case log.EventAttack:
		m.see(sub)
		m.record(ev.Player, BehaviorAggressive)
	case log.EventAuditStart:
		m.see(game.SubAudit)
		m.auditor = ev.Player
		m.record(ev.Player, BehaviorAggressive)
	case log.EventHeadHunterStart:
		m.see(sub)
		m.record(ev.Player, BehaviorAggressive)
	case log.EventChainLink:
		m.see(sub)
	case log.EventSteal:
		m.pendingHold = true
	case log.EventPlayClassification:
		if !stolen {
			m.see(sub)
			m.record(ev.Player, BehaviorDefensive)
		}
	case log.EventPass:
		switch ev.Phase {
		case game.PhaseAudit.String():
			if ev.Player == m.auditor {
				m.lacking[ev.Player][game.SubSecured] = true
			} else {
				m.lacking[ev.Player][game.SubHacked] = true
			}
		case game.PhaseHeadHunterBattle.String():
			m.lacking[ev.Player][game.SubHeadHunter] = true
		}
	}
}

func (m *OpponentModel) see(s game.Subtype) {
	if s == "" {
		return
	}
	m.observed[s]++
	m.observedTotal++
}

func (m *OpponentModel) record(player int, b Behavior) {
	r := append(m.recent[player], b)
	if len(r) > recentWindow {
		r = r[len(r)-recentWindow:]
	}
	m.recent[player] = r
}

// Observed returns how many cards of subtype s have been seen played since
// the last reshuffle.
func (m *OpponentModel) Observed(s game.Subtype) int {
	return m.observed[s]
}

// Behavior classifies player's last actions. A style needs at least half of
// the window to count.
func (m *OpponentModel) Behavior(player int) Behavior {
	r := m.recent[player]
	if len(r) < minBehaviorSeen {
		return BehaviorUnknown
	}
	counts := make(map[Behavior]int)
	for _, b := range r {
		counts[b]++
	}
	best, bestN := BehaviorUnknown, 0
	for _, b := range []Behavior{BehaviorAggressive, BehaviorDefensive, BehaviorBuilding} {
		if counts[b] > bestN {
			best, bestN = b, counts[b]
		}
	}
	if 2*bestN < len(r) {
		return BehaviorUnknown
	}
	return best
}

// CounterLikelihood estimates the chance that holder has at least one card of
// subtype s among handSize unseen cards. known are cards the asking player can
// see (its own hand). accuracy blends the card-counted estimate with the
// naive composition prior: 0 uses only the prior, 1 only the count.
func (m *OpponentModel) CounterLikelihood(holder int, s game.Subtype, handSize int, known []game.Card, comp game.Composition, accuracy float64) float64 {
	total := comp.Total()
	if total == 0 || handSize <= 0 {
		return 0
	}
	prior := atLeastOne(float64(comp.Count(s))/float64(total), handSize)

	var counted float64
	if !m.lacking[holder][s] {
		remaining := comp.Count(s) - m.observed[s]
		unseen := total - m.observedTotal - len(known)
		for _, c := range known {
			if c.Subtype == s {
				remaining--
			}
		}
		if remaining > 0 && unseen > 0 {
			counted = atLeastOne(float64(remaining)/float64(unseen), handSize)
		}
	}
	return accuracy*counted + (1-accuracy)*prior
}

// atLeastOne is 1-(1-p)^n, the chance of at least one hit in n draws.
func atLeastOne(p float64, n int) float64 {
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return 0
	}
	return 1 - math.Pow(1-p, float64(n))
}
