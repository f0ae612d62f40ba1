package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/config"
	"github.com/peterkuimelis/netwars/internal/log"
	nwnet "github.com/peterkuimelis/netwars/internal/net"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		config.Exitf("Error: %v", err)
	}
}

// newRootCmd builds the CLI. Flags default to the NETWARS_* environment.
func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "netwars",
		Short:         "Build networks, mine bitcoin, sabotage your rival",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "AI tier: easy, medium, hard or expert")
	root.PersistentFlags().StringVar(&cfg.DeckFile, "deck-file", cfg.DeckFile, "deck YAML file (default: embedded deck)")
	root.PersistentFlags().StringVar(&cfg.DeckName, "deck", cfg.DeckName, "deck name inside the deck file")
	root.PersistentFlags().StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "AI tuning YAML file (default: embedded tuning)")
	root.PersistentFlags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 for random)")

	root.AddCommand(newHostCmd(cfg), newJoinCmd(cfg), newPlayCmd(cfg), newSimulateCmd(cfg))
	return root
}

// newServer builds a game server from the resolved configuration.
func newServer(cfg *config.Config) (*nwnet.Server, error) {
	comp, err := cfg.Composition()
	if err != nil {
		return nil, err
	}
	tun, err := cfg.Tuning()
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return &nwnet.Server{
		Addr:        cfg.Addr,
		Composition: comp,
		Tuning:      &tun,
		Difficulty:  level,
		Seed:        cfg.Seed,
	}, nil
}

func newHostCmd(cfg *config.Config) *cobra.Command {
	var aiFirst, verbose bool
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Serve games against the AI over TCP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := newServer(cfg)
			if err != nil {
				return err
			}
			srv.AIFirst = aiFirst
			if verbose {
				srv.Logger = log.NewTextLogger(cmd.OutOrStdout())
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().BoolVar(&aiFirst, "ai-first", false, "let the AI take the first turn")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every game event")
	return cmd
}

func newJoinCmd(cfg *config.Config) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "join [addr]",
		Short: "Connect to a netwars host and play in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := cfg.Addr
			if len(args) == 1 {
				addr = args[0]
			}
			return nwnet.Connect(cmd.Context(), addr, name, cfg.Difficulty)
		},
	}
	cmd.Flags().StringVar(&name, "name", os.Getenv("USER"), "your display name")
	return cmd
}

func newPlayCmd(cfg *config.Config) *cobra.Command {
	var name string
	var aiFirst bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the AI in this terminal without a network listener",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := newServer(cfg)
			if err != nil {
				return err
			}
			srv.AIFirst = aiFirst

			local, remote := net.Pipe()
			errCh := make(chan error, 2)
			go func() {
				defer remote.Close()
				errCh <- srv.Serve(cmd.Context(), remote)
			}()
			go func() {
				defer local.Close()
				client := nwnet.NewClient(local, cmd.InOrStdin(), cmd.OutOrStdout())
				if err := client.Join(name, cfg.Difficulty); err != nil {
					errCh <- err
					return
				}
				errCh <- client.RunREPL(cmd.Context())
			}()
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&name, "name", "You", "your display name")
	cmd.Flags().BoolVar(&aiFirst, "ai-first", false, "let the AI take the first turn")
	return cmd
}

func newSimulateCmd(cfg *config.Config) *cobra.Command {
	var games int
	var p1, p2 string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run AI-versus-AI games and report the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := cfg.Composition()
			if err != nil {
				return err
			}
			tun, err := cfg.Tuning()
			if err != nil {
				return err
			}
			var levels [2]ai.Difficulty
			for i, name := range []string{p1, p2} {
				if levels[i], err = ai.ParseDifficulty(name); err != nil {
					return err
				}
			}
			sim := Simulation{
				Games:       games,
				Levels:      levels,
				Composition: comp,
				Tuning:      &tun,
				Seed:        cfg.Seed,
			}
			if verbose {
				sim.Logger = log.NewTextLogger(cmd.OutOrStdout())
			}
			res, err := sim.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&games, "games", "n", 10, "number of games")
	cmd.Flags().StringVar(&p1, "p1", "medium", "tier for P1")
	cmd.Flags().StringVar(&p2, "p2", "hard", "tier for P2")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every game event")
	return cmd
}
