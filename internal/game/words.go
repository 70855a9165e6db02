package game

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

//go:embed words.json
var wordsJSON []byte

// WordBank is the fixed table of opposing word pairs a session draws from
type WordBank struct {
	pairs []models.WordPair
	clues map[string][]string // word -> clue templates for computer players
}

type wordEntry struct {
	Majority      string   `json:"majority"`
	Minority      string   `json:"minority"`
	MajorityClues []string `json:"majorityClues"`
	MinorityClues []string `json:"minorityClues"`
}

// NewWordBank builds a word bank from pairs without clue templates.
// Every word must be unique across the table.
func NewWordBank(pairs []models.WordPair) (*WordBank, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyWordBank
	}
	seen := make(map[string]bool, 2*len(pairs))
	for _, pair := range pairs {
		for _, word := range []string{pair.Majority, pair.Minority} {
			if seen[word] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
			}
			seen[word] = true
		}
	}
	return &WordBank{
		pairs: append([]models.WordPair{}, pairs...),
		clues: make(map[string][]string),
	}, nil
}

// LoadWordBank parses a JSON word table
func LoadWordBank(data []byte) (*WordBank, error) {
	var entries []wordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing word table: %w", err)
	}
	pairs := make([]models.WordPair, 0, len(entries))
	for _, entry := range entries {
		pairs = append(pairs, models.WordPair{Majority: entry.Majority, Minority: entry.Minority})
	}
	wb, err := NewWordBank(pairs)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		wb.clues[entry.Majority] = entry.MajorityClues
		wb.clues[entry.Minority] = entry.MinorityClues
	}
	return wb, nil
}

var defaultWordBank = sync.OnceValue(func() *WordBank {
	wb, err := LoadWordBank(wordsJSON)
	if err != nil {
		panic(err)
	}
	return wb
})

// DefaultWordBank returns the word bank embedded in the binary
func DefaultWordBank() *WordBank {
	return defaultWordBank()
}

// Pick returns one pair chosen uniformly at random
func (w *WordBank) Pick(r Random) models.WordPair {
	return w.pairs[r.IntN(len(w.pairs))]
}

// Pairs returns a copy of the table
func (w *WordBank) Pairs() []models.WordPair {
	return append([]models.WordPair{}, w.pairs...)
}

// Clues returns the clue templates known for a word
func (w *WordBank) Clues(word string) []string {
	return w.clues[word]
}
