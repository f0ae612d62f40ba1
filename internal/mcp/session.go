package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
	nwnet "github.com/peterkuimelis/netwars/internal/net"
)

// Defaults are applied to start_game arguments the caller leaves out.
type Defaults struct {
	Composition game.Composition
	Tuning      *ai.Tuning
	Difficulty  ai.Difficulty
	Seed        uint64
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string             `json:"session_id"`
	Events    []nwnet.EventView  `json:"events"`
	State     *nwnet.StateView   `json:"state,omitempty"`
	Actions   []nwnet.ActionView `json:"actions,omitempty"`
	Rejected  string             `json:"rejected,omitempty"`
	GameOver  bool               `json:"game_over"`
	Winner    int                `json:"winner,omitempty"`
	Result    string             `json:"result,omitempty"`
}

// Games holds the sessions started through the tools. The most recent one
// is used when a tool call omits session_id.
type Games struct {
	defaults Defaults

	mu       sync.Mutex
	sessions map[string]*nwnet.Session
	latest   string
}

// NewGames creates an empty registry.
func NewGames(d Defaults) *Games {
	return &Games{defaults: d, sessions: make(map[string]*nwnet.Session)}
}

// start creates and registers a session.
func (g *Games) start(name string, difficulty ai.Difficulty, seed uint64, aiFirst bool) *nwnet.Session {
	sess := nwnet.NewSession(nwnet.SessionConfig{
		Name:        name,
		Composition: g.defaults.Composition,
		Tuning:      g.defaults.Tuning,
		Difficulty:  difficulty,
		Seed:        seed,
		AIFirst:     aiFirst,
		Logger:      log.DiscardLogger{},
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[sess.ID] = sess
	g.latest = sess.ID
	return sess
}

// lookup returns the session with id, or the latest one for an empty id.
func (g *Games) lookup(id string) (*nwnet.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id == "" {
		id = g.latest
	}
	if id == "" {
		return nil, fmt.Errorf("no game is running; use start_game first")
	}
	sess, ok := g.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return sess, nil
}

// finish forgets a session once its result has been reported.
func (g *Games) finish(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, id)
	if g.latest == id {
		g.latest = ""
	}
}

// snapshot builds the tool response for sess.
func (g *Games) snapshot(sess *nwnet.Session) *ToolResponse {
	state, actions, events := sess.Snapshot()
	resp := &ToolResponse{
		SessionID: sess.ID,
		Events:    events,
		State:     state,
		Actions:   actions,
	}
	if over, winner := sess.Over(); over {
		resp.GameOver = true
		resp.Winner = winner
		resp.Result = sess.Result()
		resp.Actions = nil
		g.finish(sess.ID)
	}
	return resp
}

// respondJSON marshals a tool response to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
