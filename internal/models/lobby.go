package models

import "time"

// Lobby is the active-index entry of a session
type Lobby struct {
	ID          string     `json:"id"`
	CreatorID   string     `json:"creatorId"`
	Status      GameStatus `json:"status"`
	PlayerCount int        `json:"playerCount"`
	Capacity    int        `json:"capacity"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// LobbyOf summarizes a session for the active index
func LobbyOf(s *Session, updatedAt time.Time) Lobby {
	return Lobby{
		ID:          s.ID,
		CreatorID:   s.CreatorID,
		Status:      s.Status,
		PlayerCount: len(s.Players),
		Capacity:    s.Capacity,
		UpdatedAt:   updatedAt,
	}
}
