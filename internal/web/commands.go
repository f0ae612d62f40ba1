package web

import (
	"fmt"

	"github.com/peterkuimelis/netwars/internal/game"
	nwnet "github.com/peterkuimelis/netwars/internal/net"
)

// Command is a browser-to-server websocket message. Type is either a session
// command ("new_game", "action", "state") or the name of an engine action
// method such as "PlayCable"; only the fields that method takes are read.
type Command struct {
	Type string `json:"type"`

	// For "new_game"
	Name       string `json:"name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	AIFirst    bool   `json:"ai_first,omitempty"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For named actions
	CardID       int    `json:"card_id,omitempty"`
	Target       int    `json:"target,omitempty"`
	TargetPlayer int    `json:"target_player,omitempty"`
	SourceKind   string `json:"source_kind,omitempty"`
	Source       int    `json:"source,omitempty"`
	TargetKind   string `json:"target_kind,omitempty"`
	DiscardClass int    `json:"discard_class,omitempty"`
}

// Reply is a server-to-browser websocket message.
type Reply struct {
	Type      string             `json:"type"` // "state" or "error"
	SessionID string             `json:"session_id,omitempty"`
	Events    []nwnet.EventView  `json:"events,omitempty"`
	State     *nwnet.StateView   `json:"state,omitempty"`
	Actions   []nwnet.ActionView `json:"actions,omitempty"`
	Rejected  string             `json:"rejected,omitempty"`
	GameOver  bool               `json:"game_over,omitempty"`
	Winner    int                `json:"winner,omitempty"`
	Result    string             `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// commandAction maps a named action command onto a game action. The player
// is filled in by the session.
func commandAction(cmd Command) (game.Action, error) {
	card := game.CardID(cmd.CardID)
	target := game.NodeID(cmd.Target)
	switch cmd.Type {
	case "PlaySwitch":
		return game.Action{Type: game.ActionPlaySwitch, CardID: card}, nil
	case "PlayCable":
		return game.Action{Type: game.ActionPlayCable, CardID: card, Target: target}, nil
	case "PlayComputer":
		return game.Action{Type: game.ActionPlayComputer, CardID: card, Target: target}, nil
	case "PlayAttack":
		return game.Action{Type: game.ActionPlayAttack, CardID: card, Target: target, TargetPlayer: cmd.TargetPlayer}, nil
	case "PlayResolution":
		return game.Action{Type: game.ActionPlayResolution, CardID: card, Target: target}, nil
	case "PlayClassification":
		return game.Action{Type: game.ActionPlayClassification, CardID: card, Target: target,
			DiscardClass: game.NodeID(cmd.DiscardClass)}, nil
	case "MoveEquipment":
		return game.Action{Type: game.ActionMoveEquipment, SourceKind: game.ParseNodeKind(cmd.SourceKind),
			Source: game.NodeID(cmd.Source), TargetKind: game.ParseNodeKind(cmd.TargetKind), Target: target}, nil
	case "ConnectFloating":
		return game.Action{Type: game.ActionConnectFloating, SourceKind: game.ParseNodeKind(cmd.SourceKind),
			Source: game.NodeID(cmd.Source), Target: target}, nil
	case "DiscardCard":
		return game.Action{Type: game.ActionDiscard, CardID: card}, nil
	case "EnterDiscardPhase":
		return game.Action{Type: game.ActionEnterDiscardPhase}, nil
	case "StartAudit":
		return game.Action{Type: game.ActionStartAudit, CardID: card, TargetPlayer: cmd.TargetPlayer}, nil
	case "RespondToAudit":
		return game.Action{Type: game.ActionRespondAudit, CardID: card}, nil
	case "PassAudit":
		return game.Action{Type: game.ActionPassAudit}, nil
	case "ToggleAuditComputerSelection":
		return game.Action{Type: game.ActionToggleAuditSelection, Target: target}, nil
	case "ConfirmAuditSelection":
		return game.Action{Type: game.ActionConfirmAuditSelection}, nil
	case "RespondToHeadHunterBattle":
		return game.Action{Type: game.ActionRespondHeadHunter, CardID: card}, nil
	case "PassHeadHunterBattle":
		return game.Action{Type: game.ActionPassHeadHunter}, nil
	case "EndPhase":
		return game.Action{Type: game.ActionEndPhase}, nil
	}
	return game.Action{}, fmt.Errorf("unknown command %q", cmd.Type)
}
