package game

import "fmt"

// --- Enums ---

type Phase int

const (
	PhaseMoves Phase = iota
	PhaseDiscard
	PhaseAudit
	PhaseHeadHunterBattle
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMoves:
		return "moves"
	case PhaseDiscard:
		return "discard"
	case PhaseAudit:
		return "audit"
	case PhaseHeadHunterBattle:
		return "headhunter-battle"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

type CardType int

const (
	CardTypeEquipment CardType = iota
	CardTypeAttack
	CardTypeResolution
	CardTypeClassification
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeEquipment:
		return "equipment"
	case CardTypeAttack:
		return "attack"
	case CardTypeResolution:
		return "resolution"
	case CardTypeClassification:
		return "classification"
	default:
		return "unknown"
	}
}

// Subtype identifies interchangeable cards. Two cards of the same subtype
// differ only by their CardID.
type Subtype string

const (
	SubSwitch   Subtype = "switch"
	SubCable2   Subtype = "cable-2"
	SubCable3   Subtype = "cable-3"
	SubComputer Subtype = "computer"

	SubHacked      Subtype = "hacked"
	SubPowerOutage Subtype = "power-outage"
	SubNewHire     Subtype = "new-hire"
	SubAudit       Subtype = "audit"

	SubSecured  Subtype = "secured"
	SubPowered  Subtype = "powered"
	SubTrained  Subtype = "trained"
	SubHelpdesk Subtype = "helpdesk"

	SubSecuritySpecialist Subtype = "security-specialist"
	SubFacilities         Subtype = "facilities"
	SubSupervisor         Subtype = "supervisor"
	SubFieldTech          Subtype = "field-tech"
	SubHeadHunter         Subtype = "head-hunter"
	SubSealTheDeal        Subtype = "seal-the-deal"
)

// CardID identifies one physical card for the whole game.
type CardID int

// NodeID identifies one placement on a network. Placement ids are never
// reused, so they stay valid while nodes move between parents.
type NodeID int

// NoNode is the zero NodeID, meaning "no target" (float the node).
const NoNode NodeID = 0

type NodeKind int

const (
	KindNone NodeKind = iota
	KindSwitch
	KindCable
	KindComputer
	KindClassification
)

func (k NodeKind) String() string {
	switch k {
	case KindSwitch:
		return "switch"
	case KindCable:
		return "cable"
	case KindComputer:
		return "computer"
	case KindClassification:
		return "classification"
	default:
		return "none"
	}
}

// ParseNodeKind maps the names used by transports back to a NodeKind.
func ParseNodeKind(s string) NodeKind {
	switch s {
	case "switch":
		return KindSwitch
	case "cable":
		return KindCable
	case "computer":
		return KindComputer
	case "classification":
		return KindClassification
	default:
		return KindNone
	}
}

// --- Action types ---

type ActionType int

const (
	ActionPlaySwitch ActionType = iota
	ActionPlayCable
	ActionPlayComputer
	ActionPlayAttack
	ActionPlayResolution
	ActionPlayClassification
	ActionMoveEquipment
	ActionConnectFloating
	ActionDiscard
	ActionEnterDiscardPhase
	ActionStartAudit
	ActionRespondAudit
	ActionPassAudit
	ActionToggleAuditSelection
	ActionConfirmAuditSelection
	ActionRespondHeadHunter
	ActionPassHeadHunter
	ActionEndPhase
)

func (a ActionType) String() string {
	switch a {
	case ActionPlaySwitch:
		return "Play Switch"
	case ActionPlayCable:
		return "Play Cable"
	case ActionPlayComputer:
		return "Play Computer"
	case ActionPlayAttack:
		return "Play Attack"
	case ActionPlayResolution:
		return "Play Resolution"
	case ActionPlayClassification:
		return "Play Classification"
	case ActionMoveEquipment:
		return "Move Equipment"
	case ActionConnectFloating:
		return "Connect Floating"
	case ActionDiscard:
		return "Discard"
	case ActionEnterDiscardPhase:
		return "Enter Discard Phase"
	case ActionStartAudit:
		return "Start Audit"
	case ActionRespondAudit:
		return "Respond to Audit"
	case ActionPassAudit:
		return "Pass Audit"
	case ActionToggleAuditSelection:
		return "Toggle Audit Selection"
	case ActionConfirmAuditSelection:
		return "Confirm Audit Selection"
	case ActionRespondHeadHunter:
		return "Respond to Head Hunter"
	case ActionPassHeadHunter:
		return "Pass Head Hunter"
	case ActionEndPhase:
		return "End Phase"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details. Only the
// fields relevant to Type are set.
type Action struct {
	Type         ActionType
	Player       int
	CardID       CardID   // card played from hand (or the audited pool)
	Subtype      Subtype  // subtype of CardID, for ranking without a lookup
	Target       NodeID   // target node; NoNode floats equipment
	TargetPlayer int      // owner of Target for attacks, audits and steals
	SourceKind   NodeKind // kind of the moved/connected node
	Source       NodeID   // node being moved or connected
	TargetKind   NodeKind // kind of Target
	DiscardClass NodeID   // own classification to give up for room
	Desc         string   // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// IsEquipment reports whether the action may spend the field-tech equipment move.
func (a Action) IsEquipment() bool {
	switch a.Type {
	case ActionPlaySwitch, ActionPlayCable, ActionPlayComputer, ActionMoveEquipment:
		return true
	}
	return false
}

// Key returns a stable identity for the action, used to track failures.
func (a Action) Key() string {
	return fmt.Sprintf("%d/%d/%s/%d/%d/%d/%d", a.Type, a.CardID, a.Subtype, a.Target, a.TargetPlayer, a.Source, a.DiscardClass)
}
