package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// SubmitClues stores a player's three clues. Resubmitting overwrites until voting opens.
func (e *Engine) SubmitClues(s *models.Session, userID string, clues []string) error {
	if s.Status != models.StatusClues {
		return ErrWrongPhase
	}
	p := s.Player(userID)
	if p == nil || !p.IsAlive {
		return ErrNotInGame
	}
	trimmed, err := normalizeClues(clues)
	if err != nil {
		return err
	}

	p.Clues = trimmed
	e.advanceClues(s)
	return nil
}

func normalizeClues(clues []string) ([]string, error) {
	if len(clues) != CluesPerPlayer {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidClueCount, len(clues), CluesPerPlayer)
	}
	out := make([]string, len(clues))
	for i, c := range clues {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: clue %d is empty", ErrInvalidClueCount, i+1)
		}
		if utf8.RuneCountInString(c) > MaxClueLength {
			return nil, fmt.Errorf("%w: clue %d is longer than %d characters", ErrInvalidClueCount, i+1, MaxClueLength)
		}
		out[i] = c
	}
	return out, nil
}

// advanceClues opens the first voting round once every alive player has submitted
func (e *Engine) advanceClues(s *models.Session) {
	alive := s.AlivePlayers()
	if len(alive) == 0 {
		return
	}
	for _, p := range alive {
		if !p.HasClues() {
			return
		}
	}
	s.Status = models.StatusVoting
	s.Round = 1
	s.VotingDeadline = e.deadline()
}
