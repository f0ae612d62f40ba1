package ai

import (
	"math/rand/v2"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// Config configures an Opponent.
type Config struct {
	Difficulty  Difficulty
	Tuning      *Tuning          // nil uses DefaultTuning
	Composition game.Composition // deck being played; zero value uses the default deck
	Seed        uint64           // 0 for random
	// Logger receives AIDecision events. nil logs to the engine's logger.
	Logger log.EventLogger
}

// Opponent is the priority-weighted decision engine. It implements
// game.OpponentController and must only be installed on one seat.
type Opponent struct {
	Difficulty Difficulty
	Logger     log.EventLogger

	tuning  Tuning
	profile Profile
	comp    game.Composition
	model   *OpponentModel
	rng     *rand.Rand
}

// New creates an opponent from cfg.
func New(cfg Config) *Opponent {
	t := DefaultTuning()
	if cfg.Tuning != nil {
		t = *cfg.Tuning
	}
	comp := cfg.Composition
	if comp.Counts == nil {
		comp = game.DefaultComposition()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Opponent{
		Difficulty: cfg.Difficulty,
		Logger:     cfg.Logger,
		tuning:     t,
		profile:    t.Profile(cfg.Difficulty),
		comp:       comp,
		model:      NewOpponentModel(),
		rng:        rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Profile returns the tier parameters in use.
func (o *Opponent) Profile() Profile {
	return o.profile
}

// Model exposes the opponent model for inspection.
func (o *Opponent) Model() *OpponentModel {
	return o.model
}

// Notify feeds committed events to the opponent model.
func (o *Opponent) Notify(ev log.GameEvent) {
	o.model.Observe(ev)
}

// TakeTurn picks and applies the best action until the moves run out, the
// best action is worthless, or a battle hands control to the other player.
//
// Three safety nets keep the loop from stalling: an action key that was
// rejected is not retried this turn, too many failures in a row or too many
// distinct failing action types force a discard, and a hard step bound ends
// the turn.
func (o *Opponent) TakeTurn(e *game.Engine, player int) {
	loop := o.tuning.Loop
	failed := make(map[string]bool)
	failedTypes := make(map[game.ActionType]bool)
	consecutive := 0

	for step := 0; step < loop.MaxSteps; step++ {
		if !onTurn(e, player) {
			return
		}
		if consecutive >= loop.MaxConsecutiveFailures || len(failedTypes) >= loop.MaxDistinctFailedTypes {
			if !o.forceDiscard(e, player) {
				o.endTurn(e, player, 0)
				return
			}
			consecutive = 0
			clear(failedTypes)
			continue
		}

		best, ok := o.choose(e, player, failed)
		if !ok || (best.Utility <= loop.WorthlessFloor && best.Action.Type != game.ActionDiscard) {
			o.endTurn(e, player, best.Utility)
			return
		}
		o.logDecision(e, player, best.Action.String(), best.Utility)
		if e.Apply(best.Action) {
			consecutive = 0
			clear(failedTypes)
			continue
		}
		failed[best.Action.Key()] = true
		failedTypes[best.Action.Type] = true
		consecutive++
	}
	if onTurn(e, player) {
		o.endTurn(e, player, 0)
	}
}

func onTurn(e *game.Engine, player int) bool {
	gs := e.State()
	return !gs.Over() && gs.Interrupt == nil && gs.CurrentPlayer == player
}

func (o *Opponent) endTurn(e *game.Engine, player int, utility float64) {
	o.logDecision(e, player, "End turn", utility)
	e.EndPhase(player)
}

// choose returns the best candidate that has not failed this turn. While an
// equipment move is open, a worthwhile equipment action goes first.
func (o *Opponent) choose(e *game.Engine, player int, failed map[string]bool) (Candidate, bool) {
	gs := e.State()
	w := DeriveWeights(o.tuning.Weights, o.tuning.Adjust, gs, player, o.model.Behavior(gs.Opponent(player)), o.profile)
	if o.rng.Float64() < o.profile.BluffChance {
		w.Risk = 0
	}

	cands := o.rank(e, player, w, o.profile.LookaheadDepth)
	for i := range cands {
		c := &cands[i]
		c.Utility += (o.rng.Float64()*2 - 1) * o.profile.Randomness
		if isCounterCard(c.Action.Subtype) && c.Action.Type != game.ActionDiscard &&
			c.Utility > 0 && o.rng.Float64() < o.profile.HoldBackChance {
			c.Utility /= 2
		}
	}
	sortCandidates(cands)

	if gs.EquipmentMovesRemaining > 0 {
		for _, c := range cands {
			if c.Action.IsEquipment() && !failed[c.Action.Key()] && c.Utility > o.tuning.Loop.WorthlessFloor {
				return c, true
			}
		}
	}
	for _, c := range cands {
		if !failed[c.Action.Key()] {
			return c, true
		}
	}
	return Candidate{}, false
}

// forceDiscard throws away the least useful card to break a failure streak.
func (o *Opponent) forceDiscard(e *game.Engine, player int) bool {
	gs := e.State()
	p := gs.Players[player]
	if len(p.Hand) == 0 || (gs.Phase == game.PhaseMoves && gs.MovesRemaining == 0) {
		return false
	}
	hand := AnalyzeHand(gs, player)
	pick := p.Hand[0]
	if len(hand.Dead) > 0 {
		pick = hand.Dead[0]
	} else {
		for _, c := range p.Hand[1:] {
			if o.cardValue(gs, player, c.Subtype) < o.cardValue(gs, player, pick.Subtype) {
				pick = c
			}
		}
	}
	o.logDecision(e, player, "Forced discard of "+pick.Name, 0)
	return e.DiscardCard(player, pick.ID)
}

func (o *Opponent) logDecision(e *game.Engine, player int, desc string, utility float64) {
	logger := o.Logger
	if logger == nil {
		logger = e.Logger
	}
	gs := e.State()
	logger.Log(log.NewAIDecisionEvent(gs.Turn, gs.Phase.String(), player, desc, utility))
}
