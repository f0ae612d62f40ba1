package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/netwars/internal/log"
)

// Observer receives every committed game event.
type Observer interface {
	Notify(event log.GameEvent)
}

// OpponentController is implemented by decision makers for seats that are
// not driven through the action API. Each method must act on e through its
// public action methods.
type OpponentController interface {
	Observer

	// TakeTurn plays actions for player until its moves are spent, it decides
	// to stop, or a battle needs the other side's input.
	TakeTurn(e *Engine, player int)

	// RespondToAudit extends or passes the audit chain when it is player's turn.
	RespondToAudit(e *Engine, player int)

	// SelectAuditComputers chooses and confirms the computers to take as auditor.
	SelectAuditComputers(e *Engine, player int)

	// RespondToHeadHunter extends or passes the head-hunter chain.
	RespondToHeadHunter(e *Engine, player int)
}

// Config holds configuration for creating a new game.
type Config struct {
	Names       [2]string
	Humans      [2]bool
	Composition Composition // deck to build; zero value uses DefaultComposition
	Deck        []Card      // explicit draw pile (top is last); overrides Composition
	Logger      log.EventLogger
	Seed        uint64 // RNG seed (0 for random)
	NoShuffle   bool   // skip the initial shuffle (for deterministic tests)
	FirstPlayer int
}

// Engine owns the committed game state and exposes the action API. Every
// action validates against the committed state, applies itself to a clone,
// and either commits the clone or rejects with a game log line.
type Engine struct {
	state     *GameState
	Logger    log.EventLogger
	rng       *rand.Rand
	observers []Observer
	opponents [2]OpponentController
	commits   int
}

// NewEngine creates a game from cfg, deals opening hands and starts turn 1.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	for i, name := range cfg.Names {
		if name == "" {
			cfg.Names[i] = fmt.Sprintf("P%d", i+1)
		}
	}

	e := &Engine{
		Logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	gs := NewGameState(cfg.Names, cfg.Humans)
	deck := cfg.Deck
	if deck == nil {
		comp := cfg.Composition
		if comp.Counts == nil {
			comp = DefaultComposition()
		}
		deck = BuildDeck(comp, 1)
	} else {
		deck = append([]Card(nil), deck...)
	}
	for _, c := range deck {
		if c.ID > gs.nextCardID {
			gs.nextCardID = c.ID
		}
	}
	if !cfg.NoShuffle {
		ShuffleCards(deck, e.rng)
	}
	gs.DrawPile = deck
	gs.CurrentPlayer = cfg.FirstPlayer

	t := &tx{gs: gs, player: cfg.FirstPlayer}
	for i := 0; i < MaxHandSize; i++ {
		for p := 0; p < 2; p++ {
			seat := (cfg.FirstPlayer + p) % 2
			e.drawCard(t, seat)
		}
	}
	e.beginTurn(t)
	e.commit(t)
	return e
}

// State returns the committed state. Callers must treat it as read-only; it
// is never mutated after being committed.
func (e *Engine) State() *GameState {
	return e.state
}

// Commits returns the number of committed transitions so far.
func (e *Engine) Commits() int {
	return e.commits
}

// AddObserver registers an observer for committed events.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// SetOpponent installs the decision maker for a non-human seat.
func (e *Engine) SetOpponent(player int, c OpponentController) {
	e.opponents[player] = c
}

// Rand exposes the engine RNG to opponent controllers so a seeded game stays
// reproducible end to end.
func (e *Engine) Rand() *rand.Rand {
	return e.rng
}

// Fork returns an engine over the same committed state with no logging, no
// observers and no opponents. Actions on the fork never affect e.
func (e *Engine) Fork() *Engine {
	return &Engine{
		state:  e.state,
		Logger: log.DiscardLogger{},
		rng:    rand.New(rand.NewPCG(e.rng.Uint64(), 1)),
	}
}

// --- Transactions ---

// tx is an in-flight transition: a private clone plus the events it produced.
type tx struct {
	gs     *GameState
	player int
	events []log.GameEvent
}

func (t *tx) emit(ev log.GameEvent) {
	t.events = append(t.events, ev)
}

func (t *tx) phase() string {
	return t.gs.Phase.String()
}

func (e *Engine) begin(player int) *tx {
	return &tx{gs: e.state.Clone(), player: player}
}

// commit ends the turn if the action spent the last move, then publishes the
// clone and its events.
func (e *Engine) commit(t *tx) bool {
	gs := t.gs
	if gs.Phase == PhaseMoves && gs.Interrupt == nil && gs.MovesRemaining == 0 && gs.EquipmentMovesRemaining == 0 {
		e.endTurn(t)
	}
	for _, ev := range t.events {
		gs.Log.Append(ev.Details)
	}
	e.state = gs
	e.commits++
	for _, ev := range t.events {
		e.publish(ev)
	}
	return true
}

// reject records why an action was refused. Only the game log changes.
func (e *Engine) reject(player int, format string, args ...any) bool {
	gs := e.state.Clone()
	ev := log.NewRejectedEvent(gs.Turn, gs.Phase.String(), player, fmt.Sprintf(format, args...))
	gs.Log.Append(ev.Details)
	e.state = gs
	e.publish(ev)
	return false
}

// publish emits a game event through the logger and notifies observers.
func (e *Engine) publish(ev log.GameEvent) {
	e.Logger.Log(ev)
	for _, o := range e.observers {
		o.Notify(ev)
	}
	for i, c := range e.opponents {
		if c == nil || (i == 1 && c == e.opponents[0]) {
			continue
		}
		c.Notify(ev)
	}
}

// --- Guards ---

// checkTurn returns why player may not take a base-phase action, or "".
func (e *Engine) checkTurn(player int) string {
	gs := e.state
	switch {
	case gs.Over():
		return "the game is over"
	case gs.Interrupt != nil:
		return fmt.Sprintf("a %s battle is in progress", gs.Phase)
	case player != gs.CurrentPlayer:
		return "it is not your turn"
	}
	return ""
}

// checkMove returns why player may not spend a move in the moves phase, or "".
func (e *Engine) checkMove(player int, equipment bool) string {
	if reason := e.checkTurn(player); reason != "" {
		return reason
	}
	gs := e.state
	if gs.Phase != PhaseMoves {
		return fmt.Sprintf("not allowed in the %s phase", gs.Phase)
	}
	if !hasMove(gs, equipment) {
		return "no moves remaining"
	}
	return ""
}

// checkBattle returns why player may not act in the active battle, or "".
func (e *Engine) checkBattle(player int, phase Phase) string {
	gs := e.state
	if gs.Over() {
		return "the game is over"
	}
	if gs.Interrupt == nil || gs.Phase != phase {
		return fmt.Sprintf("no %s battle is in progress", phase)
	}
	if decider, _ := gs.Decider(); decider != player {
		return fmt.Sprintf("it is P%d's turn to respond", decider+1)
	}
	return ""
}

func hasMove(gs *GameState, equipment bool) bool {
	return gs.MovesRemaining > 0 || (equipment && gs.EquipmentMovesRemaining > 0)
}

// spend consumes one move, using the equipment move first when allowed.
func spend(gs *GameState, equipment bool) {
	if equipment && gs.EquipmentMovesRemaining > 0 {
		gs.EquipmentMovesRemaining--
		return
	}
	gs.MovesRemaining--
}

// --- Opponent driving ---

// ExecuteAITurn lets the current player's opponent controller play its turn.
// It runs synchronously to completion (or until a battle needs the human).
func (e *Engine) ExecuteAITurn() bool {
	gs := e.state
	p := gs.CurrentPlayer
	if reason := e.checkTurn(p); reason != "" {
		return e.reject(p, "no AI turn: %s", reason)
	}
	if gs.Players[p].IsHuman || e.opponents[p] == nil {
		return e.reject(p, "no AI controls P%d", p+1)
	}
	e.opponents[p].TakeTurn(e, p)
	return true
}

// AdvanceAI runs opponent controllers for as long as the game waits on a
// non-human seat, at most maxSteps decisions. A controller that fails to
// make progress is forced forward so the loop always terminates.
func (e *Engine) AdvanceAI(maxSteps int) int {
	steps := 0
	for ; steps < maxSteps; steps++ {
		decider, ok := e.state.Decider()
		if !ok {
			break
		}
		ctrl := e.opponents[decider]
		if ctrl == nil || e.state.Players[decider].IsHuman {
			break
		}
		before := e.commits
		switch in := e.state.Interrupt.(type) {
		case *AuditBattle:
			if in.Step == AuditSelection {
				ctrl.SelectAuditComputers(e, decider)
			} else {
				ctrl.RespondToAudit(e, decider)
			}
		case *HeadHunterBattle:
			ctrl.RespondToHeadHunter(e, decider)
		default:
			ctrl.TakeTurn(e, decider)
		}
		if e.commits == before {
			e.forceProgress(decider)
		}
	}
	return steps
}

// forceProgress makes the minimal legal move for a stuck decider.
func (e *Engine) forceProgress(player int) {
	switch in := e.state.Interrupt.(type) {
	case *AuditBattle:
		if in.Step == AuditSelection {
			for _, id := range in.Available {
				if len(e.currentAuditSelection()) >= in.ComputersToReturn {
					break
				}
				if !in.IsSelected(id) {
					e.ToggleAuditComputerSelection(player, id)
				}
			}
			e.ConfirmAuditSelection(player)
			return
		}
		e.PassAudit(player)
	case *HeadHunterBattle:
		e.PassHeadHunterBattle(player)
	default:
		e.EndPhase(player)
	}
}

func (e *Engine) currentAuditSelection() []NodeID {
	if a, ok := e.state.Audit(); ok {
		return a.Selected
	}
	return nil
}
