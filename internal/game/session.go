package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// Create opens a new session in the waiting state with the creator enrolled
func (e *Engine) Create(creatorID, displayName string, capacity, minorityCount int) (*models.Session, error) {
	if capacity < MinCapacity || capacity > MaxCapacity || minorityCount < 1 || minorityCount >= capacity {
		return nil, fmt.Errorf("%w: capacity=%d minority=%d", ErrInvalidConfig, capacity, minorityCount)
	}
	now := e.now()
	return &models.Session{
		ID:            e.NewID(),
		CreatorID:     creatorID,
		Status:        models.StatusWaiting,
		Players:       []*models.Player{newPlayer(creatorID, displayName, false, now)},
		Capacity:      capacity,
		MinorityCount: minorityCount,
		Eliminations:  []models.Elimination{},
		CreatedAt:     now,
	}, nil
}

// Join enrolls a player; the join that fills the roster deals roles and starts the clue phase
func (e *Engine) Join(s *models.Session, userID, displayName string) (*models.Player, error) {
	return e.join(s, userID, displayName, false)
}

func (e *Engine) join(s *models.Session, userID, displayName string, isBot bool) (*models.Player, error) {
	if err := requireWaiting(s); err != nil {
		return nil, err
	}
	if s.Player(userID) != nil {
		return nil, ErrAlreadyJoined
	}
	if s.IsFull() {
		return nil, ErrGameFull
	}

	p := newPlayer(userID, displayName, isBot, e.now())
	s.Players = append(s.Players, p)
	if s.IsFull() {
		e.start(s)
	}
	return p, nil
}

// Leave removes a player from the lobby or marks them departed once the game runs.
// A departing wolf hands the win to the sheep.
func (e *Engine) Leave(s *models.Session, userID string) error {
	if s.Status == models.StatusEnded {
		return ErrGameAlreadyEnded
	}
	i := slices.IndexFunc(s.Players, func(p *models.Player) bool { return p.UserID == userID })
	if i < 0 {
		return ErrNotInGame
	}

	if s.Status == models.StatusWaiting {
		s.Players = slices.Delete(s.Players, i, i+1)
		if s.CreatorID == userID && len(s.Players) > 0 {
			s.CreatorID = s.Players[0].UserID
		}
		return nil
	}

	p := s.Players[i]
	if !p.IsAlive {
		return ErrNotInGame
	}
	p.IsAlive = false
	p.VotedFor = ""
	s.Eliminations = append(s.Eliminations, models.Elimination{
		Round:    s.Round,
		UserID:   userID,
		Departed: true,
	})

	if p.Role == models.RoleMinority {
		e.end(s, models.RoleMajority)
		return nil
	}

	switch s.Status {
	case models.StatusClues:
		e.advanceClues(s)
	case models.StatusVoting:
		for _, other := range s.Players {
			if other.VotedFor == userID {
				other.VotedFor = ""
			}
		}
	}
	return nil
}

// start deals roles and words and opens the clue phase
func (e *Engine) start(s *models.Session) {
	e.assignRoles(s)
	now := e.now()
	s.Status = models.StatusClues
	s.StartedAt = &now
}

func (e *Engine) assignRoles(s *models.Session) {
	pair := e.Words.Pick(e.Random)
	for _, p := range s.Players {
		p.Role = models.RoleMajority
	}
	for _, i := range pickDistinct(e.Random, len(s.Players), s.MinorityCount) {
		s.Players[i].Role = models.RoleMinority
	}
	for _, p := range s.Players {
		p.Word = pair.WordFor(p.Role)
	}
	s.WordPair = &pair
}

func requireWaiting(s *models.Session) error {
	switch s.Status {
	case models.StatusWaiting:
		return nil
	case models.StatusEnded:
		return ErrGameAlreadyEnded
	default:
		return ErrGameAlreadyStarted
	}
}

func newPlayer(userID, displayName string, isBot bool, joinedAt time.Time) *models.Player {
	return &models.Player{
		UserID:      userID,
		DisplayName: displayName,
		Clues:       []string{},
		IsAlive:     true,
		JoinedAt:    joinedAt,
		IsBot:       isBot,
	}
}
