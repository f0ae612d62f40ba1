package game

import (
	"fmt"

	"github.com/peterkuimelis/netwars/internal/log"
)

const (
	BaseMoves          = 3
	MaxHandSize        = 6
	WinningScore       = 25
	MaxClassifications = 2
	GameLogSize        = 20
)

// Player represents one player's entire state.
type Player struct {
	ID               int
	Name             string
	Hand             []Card
	Network          PlayerNetwork
	Classifications  []*PlacedCard
	AuditedComputers []Card // computers returned by audits; playable, unlimited
	Score            int
	IsHuman          bool
}

func (p *Player) clone() *Player {
	c := *p
	c.Hand = append([]Card(nil), p.Hand...)
	c.Network = p.Network.Clone()
	c.Classifications = nil
	for _, pc := range p.Classifications {
		c.Classifications = append(c.Classifications, pc.clone())
	}
	c.AuditedComputers = append([]Card(nil), p.AuditedComputers...)
	return &c
}

// HandCard returns the hand card with the given id.
func (p *Player) HandCard(id CardID) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// FirstInHand returns the first hand card of subtype s.
func (p *Player) FirstInHand(s Subtype) (Card, bool) {
	for _, c := range p.Hand {
		if c.Subtype == s {
			return c, true
		}
	}
	return Card{}, false
}

// CountInHand counts hand cards of subtype s.
func (p *Player) CountInHand(s Subtype) int {
	count := 0
	for _, c := range p.Hand {
		if c.Subtype == s {
			count++
		}
	}
	return count
}

// RemoveFromHand removes a card from the hand by id.
func (p *Player) RemoveFromHand(id CardID) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// removeAudited removes a computer from the audited pool by id.
func (p *Player) removeAudited(id CardID) (Card, bool) {
	for i, c := range p.AuditedComputers {
		if c.ID == id {
			p.AuditedComputers = append(p.AuditedComputers[:i], p.AuditedComputers[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Classification returns the classification in play with the given placement id.
func (p *Player) Classification(id NodeID) (*PlacedCard, bool) {
	for _, pc := range p.Classifications {
		if pc.ID == id {
			return pc, true
		}
	}
	return nil, false
}

// HasClassification reports whether a classification of subtype s is in play.
func (p *Player) HasClassification(s Subtype) bool {
	for _, pc := range p.Classifications {
		if pc.Card.Subtype == s {
			return true
		}
	}
	return false
}

// StealProtected reports whether two classifications share a subtype. Such a
// pair cannot be stolen from.
func (p *Player) StealProtected() bool {
	seen := make(map[Subtype]bool)
	for _, pc := range p.Classifications {
		if seen[pc.Card.Subtype] {
			return true
		}
		seen[pc.Card.Subtype] = true
	}
	return false
}

// removeClassification takes a classification out of play.
func (p *Player) removeClassification(id NodeID) (*PlacedCard, bool) {
	for i, pc := range p.Classifications {
		if pc.ID == id {
			p.Classifications = append(p.Classifications[:i], p.Classifications[i+1:]...)
			return pc, true
		}
	}
	return nil, false
}

// --- Interrupts ---

// Interrupt is the battle currently nested inside a turn. A nil Interrupt
// means the game is idle in its base phase; otherwise exactly one battle is
// active and GameState.Phase names it.
type Interrupt interface {
	Phase() Phase
	cloneInterrupt() Interrupt
}

// ChainLink is one response card played in a battle.
type ChainLink struct {
	Player int
	Card   Card
}

type AuditStep int

const (
	AuditCounter AuditStep = iota
	AuditSelection
)

func (s AuditStep) String() string {
	if s == AuditSelection {
		return "selection"
	}
	return "counter"
}

// AuditBattle records an audit in progress.
type AuditBattle struct {
	AuditorIndex      int
	TargetIndex       int
	AuditCard         Card
	Chain             []ChainLink
	ComputersToReturn int
	Step              AuditStep
	Available         []NodeID // target's computers when selection began
	Selected          []NodeID // oldest first
}

func (*AuditBattle) Phase() Phase { return PhaseAudit }

func (a *AuditBattle) cloneInterrupt() Interrupt {
	c := *a
	c.Chain = append([]ChainLink(nil), a.Chain...)
	c.Available = append([]NodeID(nil), a.Available...)
	c.Selected = append([]NodeID(nil), a.Selected...)
	return &c
}

// Responder returns the player expected to act in the counter chain: the
// target on even chain lengths, the auditor on odd ones.
func (a *AuditBattle) Responder() int {
	if len(a.Chain)%2 == 0 {
		return a.TargetIndex
	}
	return a.AuditorIndex
}

// ResponseSubtype returns the card the responder needs to extend the chain.
func (a *AuditBattle) ResponseSubtype() Subtype {
	if a.Responder() == a.TargetIndex {
		return SubHacked
	}
	return SubSecured
}

// IsSelected reports whether a computer is currently selected.
func (a *AuditBattle) IsSelected(id NodeID) bool {
	for _, s := range a.Selected {
		if s == id {
			return true
		}
	}
	return false
}

// HeadHunterBattle records a contested steal in progress.
type HeadHunterBattle struct {
	AttackerIndex          int
	DefenderIndex          int
	AttackCard             Card
	TargetClassification   NodeID
	DiscardClassification  NodeID // attacker's card to give up for room, or NoNode
	Chain                  []ChainLink
	PreviousPhase          Phase
	PreviousMovesRemaining int
	PreviousEquipmentMoves int
}

func (*HeadHunterBattle) Phase() Phase { return PhaseHeadHunterBattle }

func (h *HeadHunterBattle) cloneInterrupt() Interrupt {
	c := *h
	c.Chain = append([]ChainLink(nil), h.Chain...)
	return &c
}

// Responder returns the player expected to act: defender on even chain
// lengths, attacker on odd ones.
func (h *HeadHunterBattle) Responder() int {
	if len(h.Chain)%2 == 0 {
		return h.DefenderIndex
	}
	return h.AttackerIndex
}

// --- GameState ---

// GameState holds the complete state of a game. A committed GameState is
// never mutated: actions work on a Clone and replace it.
type GameState struct {
	Players                 [2]*Player
	CurrentPlayer           int
	Phase                   Phase
	MovesRemaining          int
	EquipmentMovesRemaining int
	// EquipmentBonusGranted is set once the field-tech move was granted this turn.
	EquipmentBonusGranted bool
	// DrawPile has its top card as the last element.
	DrawPile    []Card
	DiscardPile []Card
	Turn        int // 1-based turn counter
	Winner      int // 0, 1, or -1 (no winner yet)
	Log         log.Ring
	Interrupt   Interrupt

	nextNodeID NodeID
	nextCardID CardID
}

// NewGameState creates an empty state with two players.
func NewGameState(names [2]string, humans [2]bool) *GameState {
	gs := &GameState{Winner: -1, Turn: 1, Log: log.NewRing(GameLogSize)}
	for i := 0; i < 2; i++ {
		gs.Players[i] = &Player{ID: i, Name: names[i], IsHuman: humans[i]}
	}
	return gs
}

// Clone returns a deep copy of the state.
func (gs *GameState) Clone() *GameState {
	c := *gs
	for i := 0; i < 2; i++ {
		c.Players[i] = gs.Players[i].clone()
	}
	c.DrawPile = append([]Card(nil), gs.DrawPile...)
	c.DiscardPile = append([]Card(nil), gs.DiscardPile...)
	c.Log = gs.Log.Clone()
	if gs.Interrupt != nil {
		c.Interrupt = gs.Interrupt.cloneInterrupt()
	}
	return &c
}

// NextNodeID allocates a placement id.
func (gs *GameState) NextNodeID() NodeID {
	gs.nextNodeID++
	return gs.nextNodeID
}

// NextCardID allocates a card id beyond every card dealt so far.
func (gs *GameState) NextCardID() CardID {
	gs.nextCardID++
	return gs.nextCardID
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// Current returns the Player struct for the turn player.
func (gs *GameState) Current() *Player {
	return gs.Players[gs.CurrentPlayer]
}

// Over reports whether the game has ended.
func (gs *GameState) Over() bool {
	return gs.Phase == PhaseGameOver
}

// Audit returns the active audit, if any.
func (gs *GameState) Audit() (*AuditBattle, bool) {
	a, ok := gs.Interrupt.(*AuditBattle)
	return a, ok
}

// HeadHunter returns the active head-hunter battle, if any.
func (gs *GameState) HeadHunter() (*HeadHunterBattle, bool) {
	h, ok := gs.Interrupt.(*HeadHunterBattle)
	return h, ok
}

// setInterrupt pushes a battle and moves the phase with it.
func (gs *GameState) setInterrupt(in Interrupt) {
	gs.Interrupt = in
	gs.Phase = in.Phase()
}

// clearInterrupt pops the battle and returns to the given phase.
func (gs *GameState) clearInterrupt(phase Phase) {
	gs.Interrupt = nil
	gs.Phase = phase
}

// Decider returns the player whose input the game is waiting for.
func (gs *GameState) Decider() (int, bool) {
	if gs.Over() {
		return -1, false
	}
	switch in := gs.Interrupt.(type) {
	case *AuditBattle:
		if in.Step == AuditSelection {
			return in.AuditorIndex, true
		}
		return in.Responder(), true
	case *HeadHunterBattle:
		return in.Responder(), true
	}
	return gs.CurrentPlayer, true
}

// discard puts cards on the discard pile.
func (gs *GameState) discard(cards ...Card) {
	gs.DiscardPile = append(gs.DiscardPile, cards...)
}

// CheckInvariants verifies the structural invariants that must hold after
// every committed transition.
func (gs *GameState) CheckInvariants() error {
	for i, p := range gs.Players {
		if err := p.Network.Verify(); err != nil {
			return fmt.Errorf("P%d network: %w", i+1, err)
		}
		if len(p.Classifications) > MaxClassifications {
			return fmt.Errorf("P%d holds %d classifications", i+1, len(p.Classifications))
		}
		if p.Score < 0 {
			return fmt.Errorf("P%d score %d is negative", i+1, p.Score)
		}
	}
	if gs.MovesRemaining < 0 || gs.EquipmentMovesRemaining < 0 {
		return fmt.Errorf("negative moves: %d/%d", gs.MovesRemaining, gs.EquipmentMovesRemaining)
	}
	if gs.EquipmentMovesRemaining > 1 {
		return fmt.Errorf("%d equipment moves, max 1", gs.EquipmentMovesRemaining)
	}
	switch {
	case gs.Interrupt == nil:
		if gs.Phase == PhaseAudit || gs.Phase == PhaseHeadHunterBattle {
			return fmt.Errorf("phase %s without a battle record", gs.Phase)
		}
	case gs.Interrupt.Phase() != gs.Phase:
		return fmt.Errorf("phase %s with a %s battle record", gs.Phase, gs.Interrupt.Phase())
	}
	if gs.Over() && gs.Winner < 0 {
		return fmt.Errorf("game over without a winner")
	}
	return nil
}
