package game

import (
	"testing"

	"github.com/peterkuimelis/netwars/internal/log"
)

// ScriptedController is an OpponentController that follows a predefined
// script of actions. Used in tests to deterministically drive the game.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int
}

type ScriptedAction struct {
	// Match by ActionType: picks the first action of this type
	Type ActionType
	// Optional: match by card subtype as well
	Subtype Subtype
	// Optional: match by target node
	Target NodeID
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType, sub Subtype) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, Subtype: sub})
	return sc
}

func (sc *ScriptedController) AddTargeted(actionType ActionType, sub Subtype, target NodeID) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, Subtype: sub, Target: target})
	return sc
}

// choose picks the next scripted action if it is available, otherwise a
// default: pass > end turn > last action.
func (sc *ScriptedController) choose(actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return Action{}, false
	}
	if sc.pos < len(sc.actions) {
		scripted := sc.actions[sc.pos]
		for _, a := range actions {
			if a.Type != scripted.Type {
				continue
			}
			if scripted.Subtype != "" && a.Subtype != scripted.Subtype {
				continue
			}
			if scripted.Target != NoNode && a.Target != scripted.Target {
				continue
			}
			sc.pos++
			return a, true
		}
	}
	for _, want := range []ActionType{ActionPassAudit, ActionPassHeadHunter, ActionConfirmAuditSelection, ActionEndPhase} {
		for _, a := range actions {
			if a.Type == want {
				return a, true
			}
		}
	}
	return actions[len(actions)-1], true
}

func (sc *ScriptedController) step(e *Engine, player int) {
	a, ok := sc.choose(e.LegalActions(player))
	if !ok {
		return
	}
	if !e.Apply(a) {
		sc.t.Logf("[%s] %s rejected: %s", sc.name, a, lastLog(e))
	}
}

func (sc *ScriptedController) TakeTurn(e *Engine, player int) {
	for i := 0; i < 20; i++ {
		if d, ok := e.State().Decider(); !ok || d != player || e.State().CurrentPlayer != player {
			return
		}
		if e.State().Interrupt != nil {
			return
		}
		before := e.Commits()
		sc.step(e, player)
		if e.Commits() == before {
			return
		}
	}
}

func (sc *ScriptedController) RespondToAudit(e *Engine, player int)       { sc.step(e, player) }
func (sc *ScriptedController) SelectAuditComputers(e *Engine, player int) { sc.step(e, player) }
func (sc *ScriptedController) RespondToHeadHunter(e *Engine, player int)  { sc.step(e, player) }
func (sc *ScriptedController) Notify(log.GameEvent)                       {}

// --- Setup helpers ---

// newTestEngine starts an unshuffled game where P1 holds hand0 and P2 holds
// hand1 (padded with computers), followed by a long draw pile of computers.
func newTestEngine(t *testing.T, hand0, hand1 []Subtype) (*Engine, *log.MemoryLogger) {
	t.Helper()
	deal := make([]Subtype, 0, 2*MaxHandSize)
	for i := 0; i < MaxHandSize; i++ {
		deal = append(deal, pick(hand0, i), pick(hand1, i))
	}
	var deck []Card
	id := CardID(1)
	for i := 0; i < 60; i++ {
		deck = append(deck, NewCard(id, SubComputer))
		id++
	}
	for i := len(deal) - 1; i >= 0; i-- {
		deck = append(deck, NewCard(id, deal[i]))
		id++
	}

	logger := log.NewMemoryLogger()
	e := NewEngine(Config{
		Names:     [2]string{"P1", "P2"},
		Humans:    [2]bool{true, true},
		Deck:      deck,
		Logger:    logger,
		NoShuffle: true,
		Seed:      7,
	})
	return e, logger
}

func pick(subs []Subtype, i int) Subtype {
	if i < len(subs) {
		return subs[i]
	}
	return SubComputer
}

// mutate edits the committed state directly for test setup.
func mutate(e *Engine, fn func(gs *GameState)) {
	gs := e.state.Clone()
	fn(gs)
	for _, p := range gs.Players {
		p.Network.Recompute()
	}
	e.state = gs
}

func addSwitch(gs *GameState, player int) NodeID {
	s := &SwitchNode{PlacedCard: PlacedCard{ID: gs.NextNodeID(), Card: NewCard(gs.NextCardID(), SubSwitch)}}
	gs.Players[player].Network.Switches = append(gs.Players[player].Network.Switches, s)
	return s.ID
}

func addCable(gs *GameState, player int, sw NodeID, sub Subtype) NodeID {
	c := &CableNode{
		PlacedCard:   PlacedCard{ID: gs.NextNodeID(), Card: NewCard(gs.NextCardID(), sub)},
		MaxComputers: CableCapacity(sub),
	}
	if err := gs.Players[player].Network.attachCable(c, sw); err != nil {
		panic(err)
	}
	return c.ID
}

func addComputer(gs *GameState, player int, cable NodeID) NodeID {
	pc := &PlacedCard{ID: gs.NextNodeID(), Card: NewCard(gs.NextCardID(), SubComputer)}
	if err := gs.Players[player].Network.attachComputer(pc, cable); err != nil {
		panic(err)
	}
	return pc.ID
}

func addIssue(gs *GameState, player int, node NodeID, sub Subtype) {
	ref, ok := gs.Players[player].Network.Find(node)
	if !ok {
		panic("node not found")
	}
	ref.Node.Issues = append(ref.Node.Issues, NewCard(gs.NextCardID(), sub))
}

func addClassification(gs *GameState, player int, sub Subtype) NodeID {
	pc := &PlacedCard{ID: gs.NextNodeID(), Card: NewCard(gs.NextCardID(), sub)}
	gs.Players[player].Classifications = append(gs.Players[player].Classifications, pc)
	return pc.ID
}

func giveCard(gs *GameState, player int, sub Subtype) CardID {
	c := NewCard(gs.NextCardID(), sub)
	gs.Players[player].Hand = append(gs.Players[player].Hand, c)
	return c.ID
}

// firstID returns the id of the first hand card of subtype s.
func firstID(t *testing.T, e *Engine, player int, s Subtype) CardID {
	t.Helper()
	c, ok := e.State().Players[player].FirstInHand(s)
	if !ok {
		t.Fatalf("P%d has no %s in hand: %v", player+1, s, e.State().Players[player].Hand)
	}
	return c.ID
}

func lastLog(e *Engine) string {
	lines := e.State().Log.Lines
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// mustApply fails the test if an action is rejected, then checks invariants.
func mustApply(t *testing.T, e *Engine, ok bool) {
	t.Helper()
	if !ok {
		t.Fatalf("action rejected: %s", lastLog(e))
	}
	checkInvariants(t, e)
}

// mustReject fails the test if an action was accepted.
func mustReject(t *testing.T, e *Engine, ok bool) {
	t.Helper()
	if ok {
		t.Fatalf("expected rejection, last log: %s", lastLog(e))
	}
	checkInvariants(t, e)
}

func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.State().CheckInvariants(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}
