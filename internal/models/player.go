package models

import "time"

// Score tracks persistent points across games
type Score struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Points      int    `json:"points"`
	GamesWon    int    `json:"gamesWon"`
	GamesLost   int    `json:"gamesLost"`
}

// Player represents a participant of a session
type Player struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role,omitempty"`
	Word        string    `json:"word,omitempty"`
	Clues       []string  `json:"clues"`
	IsAlive     bool      `json:"isAlive"`
	VotedFor    string    `json:"votedFor,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
	IsBot       bool      `json:"isBot,omitempty"`
}

// HasClues reports whether the player submitted a full clue set
func (p *Player) HasClues() bool {
	return len(p.Clues) == 3
}

// HasVoted reports whether the player named a suspect this round
func (p *Player) HasVoted() bool {
	return p.VotedFor != ""
}
