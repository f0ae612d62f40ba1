package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
)

// RegisterTools adds all game tools to the MCP server.
func (g *Games) RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), g.handleStartGame)
	s.AddTool(takeActionTool(), g.handleTakeAction)
	s.AddTool(getGameStateTool(), g.handleGetGameState)
	s.AddTool(listCardsTool(), g.handleListCards)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Netwars game against the built-in AI. You play seat 0 (P1). "+
			"Returns a session id, the initial state and your numbered legal actions."),
		mcp.WithString("difficulty", mcp.Description("AI tier"), mcp.Enum("easy", "medium", "hard", "expert")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible game; 0 or omitted for random")),
		mcp.WithBoolean("ai_first", mcp.Description("Let the AI take the first turn")),
		mcp.WithString("name", mcp.Description("Your display name")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Play one of your legal actions by index. The AI answers immediately; the response "+
			"holds every event since your last call and your next set of actions."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the actions list")),
		mcp.WithString("session_id", mcp.Description("Session to act in; defaults to the latest game")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and legal actions without acting. Read-only."),
		mcp.WithString("session_id", mcp.Description("Session to inspect; defaults to the latest game")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card subtype with its rules text and its count in the deck."),
	)
}

// --- Tool handlers ---

func (g *Games) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	difficulty := g.defaults.Difficulty
	if name := request.GetString("difficulty", ""); name != "" {
		d, err := ai.ParseDifficulty(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		difficulty = d
	}
	seed := g.defaults.Seed
	if n := request.GetInt("seed", 0); n > 0 {
		seed = uint64(n)
	} else if n < 0 {
		return mcp.NewToolResultError("seed must be >= 0"), nil
	}

	sess := g.start(request.GetString("name", ""), difficulty, seed, request.GetBool("ai_first", false))
	return mcp.NewToolResultText(respondJSON(g.snapshot(sess))), nil
}

func (g *Games) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := g.lookup(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	index := request.GetInt("index", -1)
	actions := sess.Actions()
	if len(actions) == 0 {
		return mcp.NewToolResultError("No actions are available to you right now."), nil
	}
	if index < 0 || index >= len(actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(actions)-1), nil
	}

	reason, ok := sess.Act(index)
	resp := g.snapshot(sess)
	if !ok {
		resp.Rejected = reason
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (g *Games) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := g.lookup(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(g.snapshot(sess))), nil
}

// CardEntry is one row of list_cards.
type CardEntry struct {
	Subtype     string `json:"subtype"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

func (g *Games) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	comp := g.defaults.Composition
	if comp.Counts == nil {
		comp = game.DefaultComposition()
	}
	cards := make([]CardEntry, 0, len(game.SubtypeOrder))
	for _, s := range game.SubtypeOrder {
		info := game.Catalog[s]
		cards = append(cards, CardEntry{
			Subtype:     string(s),
			Name:        info.Name,
			Type:        info.Type.String(),
			Description: info.Description,
			Count:       comp.Count(s),
		})
	}
	return mcp.NewToolResultText(respondJSON(cards)), nil
}
