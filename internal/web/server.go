package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
	nwnet "github.com/peterkuimelis/netwars/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Subtype     string `json:"subtype"`
	Name        string `json:"name"`
	CardType    string `json:"cardType"`
	Description string `json:"description"`
}

// Options configures a Server.
type Options struct {
	Composition game.Composition // zero value uses the default deck
	Tuning      *ai.Tuning
	Difficulty  ai.Difficulty
	Seed        uint64
}

// Server is the netwars HTTP and websocket API for a rendering layer.
type Server struct {
	opts Options
	mux  *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*nwnet.Session
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Composition.Counts == nil {
		opts.Composition = game.DefaultComposition()
	}
	s := &Server{
		opts:     opts,
		mux:      http.NewServeMux(),
		sessions: make(map[string]*nwnet.Session),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/deck", s.handleDeck)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleSession)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, len(game.SubtypeOrder))
	for _, st := range game.SubtypeOrder {
		info := game.Catalog[st]
		cards = append(cards, CardInfo{
			Subtype:     string(st),
			Name:        info.Name,
			CardType:    info.Type.String(),
			Description: info.Description,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "yaml" {
		data, err := deckFileYAML(s.opts.Composition)
		if err != nil {
			http.Error(w, "could not render deck", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
		return
	}
	writeJSON(w, deckInfo(s.opts.Composition))
}

// handleSession returns a read-only view of a running game.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess, ok := s.sessions[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, sess.View())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	var sess *nwnet.Session
	defer func() {
		if sess != nil {
			s.forget(sess.ID)
		}
	}()

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				log.Printf("WebSocket read: %v", err)
			}
			return
		}

		var cmd Command
		var reply Reply
		if err := json.Unmarshal(data, &cmd); err != nil {
			reply = Reply{Type: "error", Error: fmt.Sprintf("bad command: %v", err)}
		} else {
			sess, reply = s.handleCommand(sess, cmd)
		}

		if err := writeReply(ctx, wsConn, reply); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

// handleCommand runs one command against the connection's session and
// returns the (possibly new) session with the reply to send.
func (s *Server) handleCommand(sess *nwnet.Session, cmd Command) (*nwnet.Session, Reply) {
	switch cmd.Type {
	case "new_game":
		difficulty := s.opts.Difficulty
		if cmd.Difficulty != "" {
			d, err := ai.ParseDifficulty(cmd.Difficulty)
			if err != nil {
				return sess, Reply{Type: "error", Error: err.Error()}
			}
			difficulty = d
		}
		seed := s.opts.Seed
		if cmd.Seed != 0 {
			seed = cmd.Seed
		}
		if sess != nil {
			s.forget(sess.ID)
		}
		sess = nwnet.NewSession(nwnet.SessionConfig{
			Name:        cmd.Name,
			Composition: s.opts.Composition,
			Tuning:      s.opts.Tuning,
			Difficulty:  difficulty,
			Seed:        seed,
			AIFirst:     cmd.AIFirst,
		})
		s.mu.Lock()
		s.sessions[sess.ID] = sess
		s.mu.Unlock()
		log.Printf("Session %s started (%s)", sess.ID, difficulty)
		return sess, snapshot(sess, "")
	}

	if sess == nil {
		return nil, Reply{Type: "error", Error: "no game: send new_game first"}
	}

	switch cmd.Type {
	case "state":
		return sess, snapshot(sess, "")
	case "action":
		reason, _ := sess.Act(cmd.Index)
		return sess, snapshot(sess, reason)
	}

	a, err := commandAction(cmd)
	if err != nil {
		return sess, Reply{Type: "error", Error: err.Error()}
	}
	reason, _ := sess.Do(a)
	return sess, snapshot(sess, reason)
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func snapshot(sess *nwnet.Session, rejected string) Reply {
	state, actions, events := sess.Snapshot()
	reply := Reply{
		Type:      "state",
		SessionID: sess.ID,
		Events:    events,
		State:     state,
		Actions:   actions,
		Rejected:  rejected,
	}
	if over, winner := sess.Over(); over {
		reply.GameOver = true
		reply.Winner = winner
		reply.Result = sess.Result()
	}
	return reply
}

func writeReply(ctx context.Context, conn *websocket.Conn, reply Reply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
