package main

import (
	"flag"
	"log"

	"github.com/peterkuimelis/netwars/internal/config"
	"github.com/peterkuimelis/netwars/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	flag.StringVar(&cfg.WebAddr, "addr", cfg.WebAddr, "HTTP listen address")
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

	srv := web.NewServer(web.Options{
		Composition: comp,
		Tuning:      &tun,
		Difficulty:  level,
		Seed:        cfg.Seed,
	})

	log.Printf("netwars web API listening on %s", cfg.WebAddr)
	if err := srv.ListenAndServe(cfg.WebAddr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
