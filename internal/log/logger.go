package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- DiscardLogger: drops everything (used by simulation forks) ---

type DiscardLogger struct{}

func (DiscardLogger) Log(GameEvent)       {}
func (DiscardLogger) Events() []GameEvent { return nil }

// --- Ring: bounded list of the most recent detail lines ---

// Ring keeps the last Cap lines appended to it, oldest first.
type Ring struct {
	Cap   int
	Lines []string
}

// NewRing returns an empty ring holding at most n lines.
func NewRing(n int) Ring {
	return Ring{Cap: n}
}

// Append adds a line, evicting the oldest once the ring is full.
func (r *Ring) Append(line string) {
	r.Lines = append(r.Lines, line)
	if r.Cap > 0 && len(r.Lines) > r.Cap {
		r.Lines = append([]string(nil), r.Lines[len(r.Lines)-r.Cap:]...)
	}
}

// Clone returns an independent copy.
func (r Ring) Clone() Ring {
	return Ring{Cap: r.Cap, Lines: append([]string(nil), r.Lines...)}
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 18 chars for alignment
	for len(phase) < 18 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int, moves, equipmentMoves int) GameEvent {
	details := fmt.Sprintf("=== Turn %d (%s, %d moves) ===", turn, playerName(player), moves)
	if equipmentMoves > 0 {
		details = fmt.Sprintf("=== Turn %d (%s, %d moves + %d equipment) ===", turn, playerName(player), moves, equipmentMoves)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "moves",
		Player:  player,
		Type:    EventNewTurn,
		Details: details,
	}
}

func NewDrawEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d card(s)", playerName(player), count),
	}
}

func NewShuffleEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("Discard pile (%d cards) shuffled into the draw pile", count),
	}
}

func NewPlaceEquipmentEvent(turn int, phase string, player int, cardName, subtype, where string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlaceEquipment,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s places %s %s", playerName(player), cardName, where),
	}
}

func NewMoveEquipmentEvent(turn int, phase string, player int, cardName, subtype, where string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventMoveEquipment,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s moves %s %s", playerName(player), cardName, where),
	}
}

func NewConnectEvent(turn int, phase string, player int, cardName, subtype, where string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventConnect,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s connects floating %s %s", playerName(player), cardName, where),
	}
}

func NewAttackEvent(turn int, phase string, player int, cardName, subtype, target string, disabled int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttack,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s plays %s on %s (%d node(s) disabled)", playerName(player), cardName, target, disabled),
	}
}

func NewAutoResolveEvent(turn int, phase string, player int, cardName, subtype, by string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAutoResolve,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s's %s clears %s", playerName(player), by, cardName),
	}
}

func NewResolveEvent(turn int, phase string, player int, cardName, subtype, target string, enabled int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventResolve,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s plays %s on %s (%d node(s) enabled)", playerName(player), cardName, target, enabled),
	}
}

func NewPlayClassificationEvent(turn int, phase string, player int, cardName, subtype string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayClassification,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s puts %s into play", playerName(player), cardName),
	}
}

func NewDiscardClassificationEvent(turn int, phase string, player int, cardName, subtype, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscardClassification,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s discards classification %s (%s)", playerName(player), cardName, reason),
	}
}

func NewAuditStartEvent(turn int, phase string, player, target int, computers int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAuditStart,
		Card:    "Audit",
		Subtype: "audit",
		Details: fmt.Sprintf("%s audits %s: %d computer(s) at stake", playerName(player), playerName(target), computers),
	}
}

func NewChainLinkEvent(turn int, phase string, player int, cardName, subtype string, index int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventChainLink,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("Chain link %d: %s responds with %s", index, playerName(player), cardName),
	}
}

func NewPassEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passes", playerName(player)),
	}
}

func NewAuditSelectEvent(turn int, phase string, player int, selected, required int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAuditSelect,
		Details: fmt.Sprintf("%s has selected %d/%d computer(s)", playerName(player), selected, required),
	}
}

func NewAuditResultEvent(turn int, phase string, player int, success bool, taken int) GameEvent {
	details := fmt.Sprintf("Audit by %s fails", playerName(player))
	if success {
		details = fmt.Sprintf("Audit by %s succeeds: %d computer(s) returned", playerName(player), taken)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAuditResult,
		Details: details,
	}
}

func NewHeadHunterStartEvent(turn int, phase string, player int, cardName, subtype, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeadHunterStart,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s plays %s targeting %s", playerName(player), cardName, target),
	}
}

func NewStealEvent(turn int, phase string, player int, cardName, subtype, outcome string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSteal,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s steals %s (%s)", playerName(player), cardName, outcome),
	}
}

func NewStealBlockedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStealBlocked,
		Card:    cardName,
		Details: fmt.Sprintf("%s's attempt on %s is blocked", playerName(player), cardName),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName, subtype string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Subtype: subtype,
		Details: fmt.Sprintf("%s discards %s", playerName(player), cardName),
	}
}

func NewScoreEvent(turn int, phase string, player int, gained, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventScore,
		Details: fmt.Sprintf("%s scores %d bitcoin (total %d)", playerName(player), gained, total),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewRejectedEvent(turn int, phase string, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s: rejected: %s", playerName(player), reason),
	}
}

func NewAIDecisionEvent(turn int, phase string, player int, desc string, utility float64) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAIDecision,
		Details: fmt.Sprintf("%s (AI) chooses %s [utility %.2f]", playerName(player), desc, utility),
	}
}
