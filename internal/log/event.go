package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventPlaceEquipment
	EventMoveEquipment
	EventConnect
	EventAttack
	EventAutoResolve
	EventResolve
	EventPlayClassification
	EventDiscardClassification
	EventAuditStart
	EventChainLink
	EventPass
	EventAuditSelect
	EventAuditResult
	EventHeadHunterStart
	EventSteal
	EventStealBlocked
	EventDiscard
	EventScore
	EventWin
	EventRejected
	EventAIDecision
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlaceEquipment:
		return "PlaceEquipment"
	case EventMoveEquipment:
		return "MoveEquipment"
	case EventConnect:
		return "Connect"
	case EventAttack:
		return "Attack"
	case EventAutoResolve:
		return "AutoResolve"
	case EventResolve:
		return "Resolve"
	case EventPlayClassification:
		return "PlayClassification"
	case EventDiscardClassification:
		return "DiscardClassification"
	case EventAuditStart:
		return "AuditStart"
	case EventChainLink:
		return "ChainLink"
	case EventPass:
		return "Pass"
	case EventAuditSelect:
		return "AuditSelect"
	case EventAuditResult:
		return "AuditResult"
	case EventHeadHunterStart:
		return "HeadHunterStart"
	case EventSteal:
		return "Steal"
	case EventStealBlocked:
		return "StealBlocked"
	case EventDiscard:
		return "Discard"
	case EventScore:
		return "Score"
	case EventWin:
		return "Win"
	case EventRejected:
		return "Rejected"
	case EventAIDecision:
		return "AIDecision"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "moves")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Subtype string    // card subtype (if applicable), e.g. "hacked"
	Details string    // human-readable detail string
}
