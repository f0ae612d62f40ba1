package net

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// NetworkController speaks the JSON protocol to the client in one seat.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which player this controller is (0 or 1)
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of the given player.
// The opponent's hand is reduced to a count.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	sv := &StateView{
		You:            buildPlayerView(state.Players[me], true),
		Opponent:       buildPlayerView(state.Players[opp], false),
		Turn:           state.Turn,
		Phase:          state.Phase.String(),
		IsYourTurn:     state.CurrentPlayer == me,
		Moves:          state.MovesRemaining,
		EquipmentMoves: state.EquipmentMovesRemaining,
		DrawPile:       len(state.DrawPile),
		DiscardPile:    len(state.DiscardPile),
		Log:            append([]string(nil), state.Log.Lines...),
		Winner:         state.Winner,
	}
	if decider, ok := state.Decider(); ok {
		sv.YourDecision = decider == me
	}
	sv.Battle = buildBattleView(state)
	return sv
}

func buildPlayerView(p *game.Player, isOwner bool) PlayerView {
	pv := PlayerView{
		Seat:             p.ID,
		Name:             p.Name,
		Score:            p.Score,
		HandCount:        len(p.Hand),
		Network:          BuildNetworkView(&p.Network),
		AuditedComputers: len(p.AuditedComputers),
	}
	if isOwner {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, CardView{ID: int(c.ID), Name: c.Name, Subtype: string(c.Subtype)})
		}
	}
	for _, pc := range p.Classifications {
		pv.Classifications = append(pv.Classifications, nodeView(game.KindClassification, pc))
	}
	return pv
}

// BuildNetworkView renders a network as switch → cable → computer trees.
func BuildNetworkView(n *game.PlayerNetwork) NetworkView {
	nv := NetworkView{Scoring: n.ScoringComputers()}
	for _, sw := range n.Switches {
		v := nodeView(game.KindSwitch, &sw.PlacedCard)
		for _, c := range sw.Cables {
			v.Children = append(v.Children, cableView(c))
		}
		nv.Switches = append(nv.Switches, v)
	}
	for _, c := range n.FloatingCables {
		nv.FloatingCables = append(nv.FloatingCables, cableView(c))
	}
	for _, pc := range n.FloatingComputers {
		nv.FloatingComputers = append(nv.FloatingComputers, nodeView(game.KindComputer, pc))
	}
	return nv
}

func cableView(c *game.CableNode) NodeView {
	v := nodeView(game.KindCable, &c.PlacedCard)
	v.Capacity = c.MaxComputers
	for _, pc := range c.Computers {
		v.Children = append(v.Children, nodeView(game.KindComputer, pc))
	}
	return v
}

func nodeView(kind game.NodeKind, pc *game.PlacedCard) NodeView {
	v := NodeView{
		ID:       int(pc.ID),
		Kind:     kind.String(),
		Name:     pc.Card.Name,
		Subtype:  string(pc.Card.Subtype),
		Disabled: pc.Disabled,
	}
	for _, is := range pc.Issues {
		v.Issues = append(v.Issues, is.Name)
	}
	return v
}

func buildBattleView(state *game.GameState) *BattleView {
	if a, ok := state.Audit(); ok {
		bv := &BattleView{
			Kind:      "audit",
			Attacker:  a.AuditorIndex,
			Defender:  a.TargetIndex,
			Responder: a.Responder(),
			Chain:     chainNames(a.Chain),
			Step:      a.Step.String(),
			ToReturn:  a.ComputersToReturn,
		}
		if a.Step == game.AuditSelection {
			bv.Responder = a.AuditorIndex
		}
		for _, id := range a.Selected {
			bv.Selected = append(bv.Selected, int(id))
		}
		return bv
	}
	if h, ok := state.HeadHunter(); ok {
		bv := &BattleView{
			Kind:      "head-hunter",
			Attacker:  h.AttackerIndex,
			Defender:  h.DefenderIndex,
			Responder: h.Responder(),
			Chain:     chainNames(h.Chain),
		}
		if pc, ok := state.Players[h.DefenderIndex].Classification(h.TargetClassification); ok {
			bv.Target = pc.String()
		}
		return bv
	}
	return nil
}

func chainNames(chain []game.ChainLink) []string {
	var names []string
	for _, l := range chain {
		names = append(names, fmt.Sprintf("P%d %s", l.Player+1, l.Card.Name))
	}
	return names
}

// BuildActionViews numbers actions in the order given.
func BuildActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Type: a.Type.String(), Desc: a.String()})
	}
	return views
}

// NewEventView converts a game event for the wire.
func NewEventView(event log.GameEvent) EventView {
	return EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Subtype: event.Subtype,
		Details: event.Details,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction sends the numbered legal actions and waits for the client's pick.
// An out-of-range index is returned as is; the session rejects it.
func (nc *NetworkController) ChooseAction(state *StateView, actions []ActionView) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    "choose_action",
		Actions: actions,
		State:   state,
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return 0, fmt.Errorf("recv action: %w", err)
	}
	if resp.Type != "action" {
		return 0, fmt.Errorf("recv action: unexpected message %q", resp.Type)
	}
	return resp.Index, nil
}

// Notify sends one event to the client.
func (nc *NetworkController) Notify(event EventView) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "notify", Event: &event})
}

// SendRejected tells the client its last action was refused.
func (nc *NetworkController) SendRejected(reason string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "rejected", Reason: reason})
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string, state *StateView) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "game_over", Winner: winner, Result: result, State: state})
}
