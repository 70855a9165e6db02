// Package render projects sessions into what a single viewer is allowed to see.
package render

import (
	"encoding/json"
	"time"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// PlayerView is one roster entry as seen by the viewer
type PlayerView struct {
	UserID      string      `json:"userId"`
	DisplayName string      `json:"displayName"`
	IsBot       bool        `json:"isBot,omitempty"`
	IsAlive     bool        `json:"isAlive"`
	IsCreator   bool        `json:"isCreator,omitempty"`
	IsYou       bool        `json:"isYou,omitempty"`
	Role        models.Role `json:"role,omitempty"`
	Word        string      `json:"word,omitempty"`
	HasClues    bool        `json:"hasClues"`
	Clues       []string    `json:"clues,omitempty"`
	HasVoted    bool        `json:"hasVoted"`
	VotedFor    string      `json:"votedFor,omitempty"`
}

// SessionView is the redacted session sent to one viewer
type SessionView struct {
	ID            string               `json:"id"`
	Status        models.GameStatus    `json:"status"`
	CreatorID     string               `json:"creatorId"`
	Capacity      int                  `json:"capacity"`
	MinorityCount int                  `json:"minorityCount"`
	Round         int                  `json:"round"`
	Winner        models.Winner        `json:"winner,omitempty"`
	WordPair      *models.WordPair     `json:"wordPair,omitempty"`
	Players       []PlayerView         `json:"players"`
	Eliminations  []models.Elimination `json:"eliminations"`

	Joined  bool        `json:"joined"`
	YouRole models.Role `json:"yourRole,omitempty"`
	YouWord string      `json:"yourWord,omitempty"`

	CluesSubmitted int `json:"cluesSubmitted"`
	VotesCast      int `json:"votesCast"`
	AliveCount     int `json:"aliveCount"`

	CreatedAt      time.Time  `json:"createdAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	VotingDeadline *time.Time `json:"votingDeadline,omitempty"`
}

// Session builds viewerID's view. Other players' roles, words and votes stay
// hidden until the game ends; clues are shared once voting opens.
func Session(s *models.Session, viewerID string) SessionView {
	ended := s.Status == models.StatusEnded
	cluesOpen := s.Status == models.StatusVoting || ended

	v := SessionView{
		ID:             s.ID,
		Status:         s.Status,
		CreatorID:      s.CreatorID,
		Capacity:       s.Capacity,
		MinorityCount:  s.MinorityCount,
		Round:          s.Round,
		Winner:         s.Winner,
		Players:        make([]PlayerView, 0, len(s.Players)),
		Eliminations:   append([]models.Elimination{}, s.Eliminations...),
		CreatedAt:      s.CreatedAt,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		VotingDeadline: s.VotingDeadline,
	}
	if ended && s.WordPair != nil {
		pair := *s.WordPair
		v.WordPair = &pair
	}

	for _, p := range s.Players {
		you := p.UserID == viewerID
		pv := PlayerView{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			IsBot:       p.IsBot,
			IsAlive:     p.IsAlive,
			IsCreator:   p.UserID == s.CreatorID,
			IsYou:       you,
			HasClues:    p.HasClues(),
			HasVoted:    p.HasVoted(),
		}
		if you || ended {
			pv.Role = p.Role
			pv.Word = p.Word
			pv.VotedFor = p.VotedFor
		}
		if (you || cluesOpen) && len(p.Clues) > 0 {
			pv.Clues = append([]string{}, p.Clues...)
		}
		if you {
			v.Joined = true
			v.YouRole = p.Role
			v.YouWord = p.Word
		}
		if p.IsAlive {
			v.AliveCount++
			if p.HasClues() {
				v.CluesSubmitted++
			}
			if p.HasVoted() {
				v.VotesCast++
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}

// SessionJSON renders viewerID's view as JSON
func SessionJSON(s *models.Session, viewerID string) ([]byte, error) {
	return json.Marshal(Session(s, viewerID))
}
