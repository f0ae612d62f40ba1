package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func decodeResponse(t *testing.T, text string) ToolResponse {
	t.Helper()
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	return resp
}

func TestStartGameAndTakeAction(t *testing.T) {
	g := NewGames(Defaults{Difficulty: ai.Easy})

	res, text := callTool(t, g.handleStartGame, map[string]any{"difficulty": "medium", "seed": float64(8), "name": "Ada"})
	require.False(t, res.IsError, text)
	start := decodeResponse(t, text)
	require.NotEmpty(t, start.SessionID)
	require.NotNil(t, start.State)
	assert.Equal(t, "Ada", start.State.You.Name)
	assert.Equal(t, "AI (medium)", start.State.Opponent.Name)
	require.NotEmpty(t, start.Actions)
	assert.NotEmpty(t, start.Events)

	endTurn := -1
	for _, a := range start.Actions {
		if a.Type == game.ActionEndPhase.String() {
			endTurn = a.Index
		}
	}
	require.GreaterOrEqual(t, endTurn, 0)

	res, text = callTool(t, g.handleTakeAction, map[string]any{"index": float64(endTurn)})
	require.False(t, res.IsError, text)
	next := decodeResponse(t, text)
	assert.Equal(t, start.SessionID, next.SessionID)
	assert.Greater(t, next.State.Turn, 1)
	assert.Empty(t, next.Rejected)

	res, text = callTool(t, g.handleGetGameState, map[string]any{"session_id": start.SessionID})
	require.False(t, res.IsError, text)
	again := decodeResponse(t, text)
	assert.Empty(t, again.Events, "events were already delivered")
	assert.Equal(t, next.State.Turn, again.State.Turn)
}

func TestTakeActionErrors(t *testing.T) {
	g := NewGames(Defaults{})

	res, _ := callTool(t, g.handleTakeAction, map[string]any{"index": float64(0)})
	assert.True(t, res.IsError, "no game yet")

	callTool(t, g.handleStartGame, map[string]any{"seed": float64(4)})
	res, _ = callTool(t, g.handleTakeAction, map[string]any{"index": float64(500)})
	assert.True(t, res.IsError)

	res, _ = callTool(t, g.handleGetGameState, map[string]any{"session_id": "nope"})
	assert.True(t, res.IsError)

	res, _ = callTool(t, g.handleStartGame, map[string]any{"difficulty": "godlike"})
	assert.True(t, res.IsError)
}

func TestListCards(t *testing.T) {
	g := NewGames(Defaults{})
	res, text := callTool(t, g.handleListCards, nil)
	require.False(t, res.IsError)

	var cards []CardEntry
	require.NoError(t, json.Unmarshal([]byte(text), &cards))
	require.Len(t, cards, len(game.SubtypeOrder))

	total := 0
	for _, c := range cards {
		total += c.Count
	}
	assert.Equal(t, game.DefaultComposition().Total(), total)
	assert.Equal(t, "switch", cards[0].Subtype)
	assert.Equal(t, "equipment", cards[0].Type)
}
