package net

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
	"github.com/peterkuimelis/netwars/internal/log"
)

// Server hosts human-versus-AI games for TCP clients, one game per connection.
type Server struct {
	Addr        string
	Composition game.Composition
	Tuning      *ai.Tuning
	Difficulty  ai.Difficulty
	Seed        uint64
	AIFirst     bool
	// Logger receives every game's events; nil keeps them in memory.
	Logger log.EventLogger
}

// Run listens on Addr and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for players on %s...\n", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		fmt.Printf("Player connected from %s\n", conn.RemoteAddr())
		go func() {
			defer conn.Close()
			if err := s.Serve(ctx, conn); err != nil {
				fmt.Printf("Game with %s ended: %v\n", conn.RemoteAddr(), err)
			}
		}()
	}
}

// Serve plays one game over conn. The client must send a join message first.
func (s *Server) Serve(ctx context.Context, conn net.Conn) error {
	ctrl := NewNetworkController(conn, HumanSeat)

	ctrl.mu.Lock()
	join, err := ctrl.recv()
	ctrl.mu.Unlock()
	if err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != "join" {
		return fmt.Errorf("read join message: unexpected message %q", join.Type)
	}

	difficulty := s.Difficulty
	if join.Difficulty != "" {
		d, err := ai.ParseDifficulty(join.Difficulty)
		if err != nil {
			_ = ctrl.SendRejected(err.Error())
		} else {
			difficulty = d
		}
	}

	sess := NewSession(SessionConfig{
		Name:        join.Name,
		Composition: s.Composition,
		Tuning:      s.Tuning,
		Difficulty:  difficulty,
		Seed:        s.Seed,
		AIFirst:     s.AIFirst,
		Logger:      s.Logger,
	})
	return Play(ctx, sess, ctrl)
}

// Play drives sess with ctrl until the game ends, ctx is cancelled or the
// connection fails.
func Play(ctx context.Context, sess *Session, ctrl *NetworkController) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		state, actions, events := sess.Snapshot()
		for _, ev := range events {
			if err := ctrl.Notify(ev); err != nil {
				return fmt.Errorf("send notify: %w", err)
			}
		}
		if over, winner := sess.Over(); over {
			return ctrl.SendGameOver(winner, sess.Result(), state)
		}
		if len(actions) == 0 {
			return errors.New("no legal actions for the human seat")
		}

		idx, err := ctrl.ChooseAction(state, actions)
		if err != nil {
			return err
		}
		if reason, ok := sess.Act(idx); !ok {
			if err := ctrl.SendRejected(reason); err != nil {
				return fmt.Errorf("send rejected: %w", err)
			}
		}
	}
}
