package game

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeckYAML []byte

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck composition in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a subtype and its count in a deck.
type CardEntry struct {
	Subtype Subtype `yaml:"subtype"`
	Count   int     `yaml:"count"`
}

// Composition is the subtype → count table for one deck.
type Composition struct {
	Name   string
	Counts map[Subtype]int
}

// Count returns how many cards of subtype s the deck holds.
func (c Composition) Count(s Subtype) int {
	return c.Counts[s]
}

// Total returns the deck size.
func (c Composition) Total() int {
	total := 0
	for _, n := range c.Counts {
		total += n
	}
	return total
}

// ParseDeckYAML parses deck YAML and returns compositions in file order.
func ParseDeckYAML(data []byte) ([]Composition, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	var comps []Composition
	for _, deck := range df.Decks {
		comp := Composition{Name: deck.Name, Counts: make(map[Subtype]int)}
		for _, entry := range deck.Cards {
			if _, ok := Catalog[entry.Subtype]; !ok {
				return nil, fmt.Errorf("deck %q: unknown subtype %q", deck.Name, entry.Subtype)
			}
			if entry.Count < 0 {
				return nil, fmt.Errorf("deck %q: negative count for %q", deck.Name, entry.Subtype)
			}
			comp.Counts[entry.Subtype] += entry.Count
		}
		comps = append(comps, comp)
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("parse deck YAML: no decks defined")
	}
	return comps, nil
}

// ParseDeckFile reads a YAML deck file from disk.
func ParseDeckFile(path string) ([]Composition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return ParseDeckYAML(data)
}

// DeckByName returns the named composition from the deck file.
func DeckByName(path, name string) (Composition, error) {
	comps, err := ParseDeckFile(path)
	if err != nil {
		return Composition{}, err
	}
	for _, c := range comps {
		if c.Name == name {
			return c, nil
		}
	}
	return Composition{}, fmt.Errorf("deck %q not found (have %d decks)", name, len(comps))
}

// DefaultComposition returns the embedded standard deck.
func DefaultComposition() Composition {
	comps, err := ParseDeckYAML(defaultDeckYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded deck.yaml: %v", err))
	}
	return comps[0]
}

// BuildDeck instantiates every card of the composition with ids starting at
// firstID, in SubtypeOrder. The top of the deck is the last element.
func BuildDeck(comp Composition, firstID CardID) []Card {
	deck := make([]Card, 0, comp.Total())
	id := firstID
	for _, s := range SubtypeOrder {
		for i := 0; i < comp.Count(s); i++ {
			deck = append(deck, NewCard(id, s))
			id++
		}
	}
	return deck
}

// ShuffleCards randomizes the card order in place.
func ShuffleCards(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
