// Package store persists sessions, the index of active sessions and the scoreboard.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// ErrNotFound is returned when no session is stored under an id
var ErrNotFound = errors.New("session not found")

// Store is the load/save contract the host uses around the game engine
type Store interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	// Save writes the session and keeps the active index in step with it
	Save(ctx context.Context, s *models.Session) error
	Exists(ctx context.Context, id string) (bool, error)
	// Active lists sessions that have not ended, most recently updated first
	Active(ctx context.Context) ([]models.Lobby, error)
	AddScores(ctx context.Context, scores []models.Score) error
	// Finish saves an ended session together with its awards. On error
	// neither the session nor the scores were written.
	Finish(ctx context.Context, s *models.Session, scores []models.Score) error
	TopScores(ctx context.Context, limit int) ([]models.Score, error)
}

func sortLobbies(lobbies []models.Lobby) {
	sort.Slice(lobbies, func(i, j int) bool {
		if !lobbies[i].UpdatedAt.Equal(lobbies[j].UpdatedAt) {
			return lobbies[i].UpdatedAt.After(lobbies[j].UpdatedAt)
		}
		return lobbies[i].ID < lobbies[j].ID
	})
}

func sortScores(scores []models.Score) {
	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		return a.UserID < b.UserID
	})
}
