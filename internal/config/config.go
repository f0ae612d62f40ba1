// Package config reads the settings shared by the netwars binaries from the
// environment. Command-line flags override whatever is loaded here.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/netwars/internal/ai"
	"github.com/peterkuimelis/netwars/internal/game"
)

// Config holds the NETWARS_* settings.
type Config struct {
	Addr       string `env:"NETWARS_ADDR" envDefault:":7777"`
	WebAddr    string `env:"NETWARS_WEB_ADDR" envDefault:":8080"`
	Difficulty string `env:"NETWARS_DIFFICULTY" envDefault:"medium"`
	DeckFile   string `env:"NETWARS_DECK_FILE"`
	DeckName   string `env:"NETWARS_DECK"`
	TuningFile string `env:"NETWARS_TUNING_FILE"`
	Seed       uint64 `env:"NETWARS_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Composition returns the configured deck. Without a deck file the embedded
// default deck is used; without a deck name the file's first deck is used.
func (c Config) Composition() (game.Composition, error) {
	if c.DeckFile == "" {
		return game.DefaultComposition(), nil
	}
	if c.DeckName != "" {
		return game.DeckByName(c.DeckFile, c.DeckName)
	}
	comps, err := game.ParseDeckFile(c.DeckFile)
	if err != nil {
		return game.Composition{}, err
	}
	return comps[0], nil
}

// Tuning returns the configured AI tuning, or the embedded defaults.
func (c Config) Tuning() (ai.Tuning, error) {
	if c.TuningFile == "" {
		return ai.DefaultTuning(), nil
	}
	return ai.LoadTuning(c.TuningFile)
}

// Level parses the configured difficulty.
func (c Config) Level() (ai.Difficulty, error) {
	return ai.ParseDifficulty(c.Difficulty)
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
