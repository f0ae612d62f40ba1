package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/netwars/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
}

// NewClient wraps an established connection. Nil in and out default to the
// process's stdin and stdout.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{conn: conn, in: in, out: out}
}

// Connect connects to a server, sends the join handshake, and runs the REPL.
func Connect(ctx context.Context, addr, name, difficulty string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, nil, nil)
	if err := c.Join(name, difficulty); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Connected! Waiting for game to start...")
	return c.RunREPL(ctx)
}

// Join sends the handshake message.
func (c *Client) Join(name, difficulty string) error {
	enc := json.NewEncoder(c.conn)
	if err := enc.Encode(ClientMessage{Type: "join", Name: name, Difficulty: difficulty}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "rejected":
			fmt.Fprintf(c.out, "Rejected: %s\n", msg.Reason)

		case "choose_action":
			RenderState(c.out, msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(reader, len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "game_over":
			RenderState(c.out, msg.State)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 18 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

// RenderState draws both boards, the turn line and the hand.
func RenderState(w io.Writer, sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	renderPlayer(w, sv.Opponent)
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	renderPlayer(w, sv.You)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	if sv.IsYourTurn && sv.Phase == game.PhaseMoves.String() {
		turnInfo += fmt.Sprintf(" | Moves %d", sv.Moves)
		if sv.EquipmentMoves > 0 {
			turnInfo += fmt.Sprintf(" (+%d equipment)", sv.EquipmentMoves)
		}
	}
	fmt.Fprintln(w, turnInfo)
	fmt.Fprintf(w, "Draw pile: %d  Discard pile: %d\n", sv.DrawPile, sv.DiscardPile)

	if b := sv.Battle; b != nil {
		fmt.Fprintf(w, "Battle: %s P%d → P%d", b.Kind, b.Attacker+1, b.Defender+1)
		if len(b.Chain) > 0 {
			fmt.Fprintf(w, "  chain: %s", strings.Join(b.Chain, ", "))
		}
		if b.Step == "selection" {
			fmt.Fprintf(w, "  select %d (%d chosen)", b.ToReturn, len(b.Selected))
		}
		fmt.Fprintf(w, "  waiting on P%d\n", b.Responder+1)
	}

	if len(sv.You.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, c := range sv.You.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, c.Name)
		}
		fmt.Fprintln(w)
	}
}

func renderPlayer(w io.Writer, pv PlayerView) {
	fmt.Fprintf(w, "║  %s  Score: %d/%d  Hand: %d  Audited: %d  Scoring: %d\n",
		pv.Name, pv.Score, game.WinningScore, pv.HandCount, pv.AuditedComputers, pv.Network.Scoring)
	for _, sw := range pv.Network.Switches {
		fmt.Fprintf(w, "║  %s\n", formatNode(sw))
		for i, cable := range sw.Children {
			branch, stem := "├─", "│ "
			if i == len(sw.Children)-1 {
				branch, stem = "└─", "  "
			}
			fmt.Fprintf(w, "║  %s %s\n", branch, formatNode(cable))
			for j, pc := range cable.Children {
				leaf := "├─"
				if j == len(cable.Children)-1 {
					leaf = "└─"
				}
				fmt.Fprintf(w, "║  %s %s %s\n", stem, leaf, formatNode(pc))
			}
		}
	}
	var floating []string
	for _, c := range pv.Network.FloatingCables {
		floating = append(floating, formatNode(c))
	}
	for _, pc := range pv.Network.FloatingComputers {
		floating = append(floating, formatNode(pc))
	}
	if len(floating) > 0 {
		fmt.Fprintf(w, "║  Floating: %s\n", strings.Join(floating, ", "))
	}
	if len(pv.Classifications) > 0 {
		var names []string
		for _, c := range pv.Classifications {
			names = append(names, formatNode(c))
		}
		fmt.Fprintf(w, "║  Classifications: %s\n", strings.Join(names, ", "))
	}
}

func formatNode(n NodeView) string {
	s := fmt.Sprintf("%s #%d", n.Name, n.ID)
	if n.Kind == game.KindCable.String() {
		s += fmt.Sprintf(" [%d/%d]", len(n.Children), n.Capacity)
	}
	if len(n.Issues) > 0 {
		s += " {" + strings.Join(n.Issues, ", ") + "}"
	}
	if n.Disabled {
		s += " DISABLED"
	}
	return s
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) readChoice(reader *bufio.Reader, count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			if err != nil {
				return 0, fmt.Errorf("read choice: %w", err)
			}
			continue
		}
		return n - 1, nil // convert to 0-indexed
	}
}
