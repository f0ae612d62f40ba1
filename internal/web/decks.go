package web

import (
	"github.com/peterkuimelis/netwars/internal/game"
	"gopkg.in/yaml.v3"
)

// DeckCard is one subtype row of the /api/deck response.
type DeckCard struct {
	Subtype string `json:"subtype"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// DeckInfo is the JSON representation of the deck for the /api/deck endpoint.
type DeckInfo struct {
	Name  string     `json:"name"`
	Total int        `json:"total"`
	Cards []DeckCard `json:"cards"`
}

func deckInfo(comp game.Composition) DeckInfo {
	di := DeckInfo{Name: comp.Name, Total: comp.Total()}
	for _, s := range game.SubtypeOrder {
		if n := comp.Count(s); n > 0 {
			di.Cards = append(di.Cards, DeckCard{Subtype: string(s), Name: game.Catalog[s].Name, Count: n})
		}
	}
	return di
}

// deckFileYAML renders comp in the deck file format, so a served deck can be
// edited and loaded back with NETWARS_DECK_FILE.
func deckFileYAML(comp game.Composition) ([]byte, error) {
	entry := game.DeckEntry{Name: comp.Name}
	for _, s := range game.SubtypeOrder {
		if n := comp.Count(s); n > 0 {
			entry.Cards = append(entry.Cards, game.CardEntry{Subtype: s, Count: n})
		}
	}
	return yaml.Marshal(game.DeckFile{Decks: []game.DeckEntry{entry}})
}
