package main

import (
	"flag"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/netwars/internal/config"
	nwmcp "github.com/peterkuimelis/netwars/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	flag.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "default AI tier")
	flag.StringVar(&cfg.DeckFile, "deck-file", cfg.DeckFile, "deck YAML file (default: embedded deck)")
	flag.StringVar(&cfg.DeckName, "deck", cfg.DeckName, "deck name inside the deck file")
	flag.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "AI tuning YAML file")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "default RNG seed (0 for random)")
	flag.Parse()

	comp, err := cfg.Composition()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	tun, err := cfg.Tuning()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	level, err := cfg.Level()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	games := nwmcp.NewGames(nwmcp.Defaults{
		Composition: comp,
		Tuning:      &tun,
		Difficulty:  level,
		Seed:        cfg.Seed,
	})

	s := server.NewMCPServer("netwars", "1.0.0")
	games.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		config.Exitf("Error: %v", err)
	}
}
