package game

import (
	"fmt"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// BotIDPrefix marks the user ids of computer players
const BotIDPrefix = "bot-"

var botNames = []string{"Alice", "Bob", "Charlie", "Diana", "Eva", "Felix", "Greta", "Hugo", "Iris", "Jonas", "Kira"}

// misleadingClues are mixed into a wolf bot's clues so it blends in
var misleadingClues = []string{"common", "popular", "basic", "normal", "typical", "ordinary"}

var fallbackClues = []string{"thing", "item", "object"}

// AddBots fills every free seat of a waiting session with computer players.
// Only the creator may do it; filling the last seat starts the game.
func (e *Engine) AddBots(s *models.Session, requesterID string) error {
	if err := requireWaiting(s); err != nil {
		return err
	}
	if requesterID != s.CreatorID {
		return ErrNotCreator
	}

	n := 0
	for !s.IsFull() {
		n++
		id := fmt.Sprintf("%s%d", BotIDPrefix, n)
		if s.Player(id) != nil {
			continue
		}
		name := botNames[(n-1)%len(botNames)]
		if n > len(botNames) {
			name = fmt.Sprintf("%s %d", name, (n-1)/len(botNames)+1)
		}
		if _, err := e.join(s, id, name, true); err != nil {
			return err
		}
	}
	return nil
}

// PlayBots lets computer players act until none of them has a move left:
// submitting clues in the clue phase and voting in each voting round.
func (e *Engine) PlayBots(s *models.Session) {
	for {
		bot := nextBot(s)
		if bot == nil {
			return
		}
		var err error
		switch s.Status {
		case models.StatusClues:
			err = e.SubmitClues(s, bot.UserID, e.botClues(bot))
		case models.StatusVoting:
			err = e.CastVote(s, bot.UserID, e.botTarget(s, bot))
		}
		if err != nil {
			return
		}
	}
}

// nextBot returns the first alive bot that still owes an action in the current phase
func nextBot(s *models.Session) *models.Player {
	for _, p := range s.Players {
		if !p.IsBot || !p.IsAlive {
			continue
		}
		switch s.Status {
		case models.StatusClues:
			if !p.HasClues() {
				return p
			}
		case models.StatusVoting:
			if !p.HasVoted() {
				return p
			}
		}
	}
	return nil
}

func (e *Engine) botClues(bot *models.Player) []string {
	pool := append([]string{}, e.Words.Clues(bot.Word)...)
	if bot.Role == models.RoleMinority {
		pool = append(pool, misleadingClues...)
	}
	if len(pool) < CluesPerPlayer {
		pool = append(pool, fallbackClues...)
	}
	clues := make([]string, 0, CluesPerPlayer)
	for _, i := range pickDistinct(e.Random, len(pool), CluesPerPlayer) {
		clues = append(clues, pool[i])
	}
	return clues
}

func (e *Engine) botTarget(s *models.Session, bot *models.Player) string {
	candidates := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsAlive && p.UserID != bot.UserID {
			candidates = append(candidates, p.UserID)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[e.Random.IntN(len(candidates))]
}

// BotGame seats a session entirely with computer players and plays it to the end
func (e *Engine) BotGame(capacity, minorityCount int) (*models.Session, error) {
	creator := BotIDPrefix + "1"
	s, err := e.Create(creator, botNames[0], capacity, minorityCount)
	if err != nil {
		return nil, err
	}
	s.Players[0].IsBot = true
	if err := e.AddBots(s, creator); err != nil {
		return nil, err
	}
	e.PlayBots(s)
	return s, nil
}
