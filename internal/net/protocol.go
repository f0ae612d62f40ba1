package net

// Message types for the JSON protocol over TCP. Every message is one JSON
// object per line.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "rejected"
	Reason string `json:"reason,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Subtype string `json:"subtype,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// CardView is a card in hand.
type CardView struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Subtype string `json:"subtype"`
}

// NodeView is one placed card. Children holds a switch's cables or a cable's
// computers.
type NodeView struct {
	ID       int        `json:"id"`
	Kind     string     `json:"kind"`
	Name     string     `json:"name"`
	Subtype  string     `json:"subtype"`
	Disabled bool       `json:"disabled,omitempty"`
	Issues   []string   `json:"issues,omitempty"`
	Capacity int        `json:"capacity,omitempty"`
	Children []NodeView `json:"children,omitempty"`
}

// NetworkView is one player's equipment graph.
type NetworkView struct {
	Switches          []NodeView `json:"switches,omitempty"`
	FloatingCables    []NodeView `json:"floating_cables,omitempty"`
	FloatingComputers []NodeView `json:"floating_computers,omitempty"`
	Scoring           int        `json:"scoring"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Seat             int         `json:"seat"`
	Name             string      `json:"name"`
	Score            int         `json:"score"`
	HandCount        int         `json:"hand_count"`
	Hand             []CardView  `json:"hand,omitempty"` // only for "you"
	Network          NetworkView `json:"network"`
	Classifications  []NodeView  `json:"classifications,omitempty"`
	AuditedComputers int         `json:"audited_computers"`
}

// BattleView describes the audit or head-hunter battle in progress.
type BattleView struct {
	Kind      string   `json:"kind"` // "audit" or "head-hunter"
	Attacker  int      `json:"attacker"`
	Defender  int      `json:"defender"`
	Responder int      `json:"responder"`
	Chain     []string `json:"chain,omitempty"`
	Step      string   `json:"step,omitempty"`
	ToReturn  int      `json:"to_return,omitempty"`
	Selected  []int    `json:"selected,omitempty"`
	Target    string   `json:"target,omitempty"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You            PlayerView  `json:"you"`
	Opponent       PlayerView  `json:"opponent"`
	Turn           int         `json:"turn"`
	Phase          string      `json:"phase"`
	IsYourTurn     bool        `json:"is_your_turn"`
	YourDecision   bool        `json:"your_decision"`
	Moves          int         `json:"moves_remaining"`
	EquipmentMoves int         `json:"equipment_moves_remaining"`
	DrawPile       int         `json:"draw_pile"`
	DiscardPile    int         `json:"discard_pile"`
	Battle         *BattleView `json:"battle,omitempty"`
	Log            []string    `json:"log,omitempty"`
	Winner         int         `json:"winner"` // -1 while the game runs
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Name       string `json:"name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}
