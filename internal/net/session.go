package net

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// HumanSeat is the seat driven through a transport; the AI plays the other.
const HumanSeat = 0

// maxAISteps bounds how many decisions the AI makes between two human actions.
const maxAISteps = 64

// SessionConfig describes a human-versus-AI game.
type SessionConfig struct {
	Name        string
	Composition game.Composition // zero value uses the default deck
	Tuning      *ai.Tuning       // nil uses the embedded tuning
	Difficulty  ai.Difficulty
	Seed        uint64 // 0 for random
	AIFirst     bool
	Logger      log.EventLogger // nil keeps events in memory
}

// Session is one game between a transport client and the AI. All methods are
// safe for concurrent use; every engine call happens with mu held.
type Session struct {
	ID         string
	Difficulty ai.Difficulty

	mu       sync.Mutex
	engine   *game.Engine
	opponent *ai.Opponent
	events   []EventView
}

// NewSession deals a new game and lets the AI open if it moves first.
func NewSession(cfg SessionConfig) *Session {
	name := cfg.Name
	if name == "" {
		name = "You"
	}
	first := HumanSeat
	if cfg.AIFirst {
		first = 1 - HumanSeat
	}
	var names [2]string
	var humans [2]bool
	names[HumanSeat], names[1-HumanSeat] = name, "AI ("+cfg.Difficulty.String()+")"
	humans[HumanSeat] = true

	s := &Session{
		ID:         uuid.NewString(),
		Difficulty: cfg.Difficulty,
	}
	s.engine = game.NewEngine(game.Config{
		Names:       names,
		Humans:      humans,
		Composition: cfg.Composition,
		Logger:      cfg.Logger,
		Seed:        cfg.Seed,
		FirstPlayer: first,
	})
	s.opponent = ai.New(ai.Config{
		Difficulty:  cfg.Difficulty,
		Tuning:      cfg.Tuning,
		Composition: cfg.Composition,
		Seed:        cfg.Seed,
	})
	s.engine.SetOpponent(1-HumanSeat, s.opponent)
	s.engine.AddObserver(s)

	s.mu.Lock()
	s.engine.AdvanceAI(maxAISteps)
	s.mu.Unlock()
	return s
}

// Notify buffers an event for the next Drain. The engine calls it with mu held.
func (s *Session) Notify(event log.GameEvent) {
	if event.Type == log.EventAIDecision {
		return
	}
	s.events = append(s.events, NewEventView(event))
}

// Actions returns the human's legal actions, empty while the AI decides.
func (s *Session) Actions() []game.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LegalActions(HumanSeat)
}

// Act applies the human's legal action at index and lets the AI respond.
// On rejection it returns the game log's reason.
func (s *Session) Act(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := s.engine.LegalActions(HumanSeat)
	if index < 0 || index >= len(actions) {
		return fmt.Sprintf("no action %d (have %d)", index, len(actions)), false
	}
	return s.apply(actions[index])
}

// Do applies an arbitrary action for the human seat and lets the AI respond.
func (s *Session) Do(a game.Action) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Player = HumanSeat
	return s.apply(a)
}

func (s *Session) apply(a game.Action) (string, bool) {
	if !s.engine.Apply(a) {
		return s.lastLine(), false
	}
	s.engine.AdvanceAI(maxAISteps)
	return "", true
}

func (s *Session) lastLine() string {
	lines := s.engine.State().Log.Lines
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// View returns the state as the human sees it.
func (s *Session) View() *StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildStateView(s.engine.State(), HumanSeat)
}

// Snapshot returns the human's view, numbered actions and the events since
// the last call, all from the same committed state.
func (s *Session) Snapshot() (*StateView, []ActionView, []EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	gs := s.engine.State()
	return BuildStateView(gs, HumanSeat), BuildActionViews(s.engine.LegalActions(HumanSeat)), events
}

// Drain returns the events since the last Drain or Snapshot.
func (s *Session) Drain() []EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// Over reports whether the game has ended and who won.
func (s *Session) Over() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.engine.State()
	return gs.Over(), gs.Winner
}

// Result describes the outcome for display.
func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs := s.engine.State()
	if !gs.Over() {
		return fmt.Sprintf("Turn %d in progress", gs.Turn)
	}
	w := gs.Players[gs.Winner]
	return fmt.Sprintf("%s wins with %d bitcoin on turn %d", w.Name, w.Score, gs.Turn)
}
