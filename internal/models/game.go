package models

import "time"

// Session represents one play-through from lobby to resolved winner
type Session struct {
	ID            string     `json:"id"`
	CreatorID     string     `json:"creatorId"`
	Status        GameStatus `json:"status"`
	Players       []*Player  `json:"players"`
	Capacity      int        `json:"capacity"`
	MinorityCount int        `json:"minorityCount"`
	WordPair      *WordPair  `json:"wordPair,omitempty"`
	Winner        Winner     `json:"winner,omitempty"`
	Round         int        `json:"round"`

	Eliminations []Elimination `json:"eliminations"`

	CreatedAt      time.Time  `json:"createdAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	VotingDeadline *time.Time `json:"votingDeadline,omitempty"`
}

// Elimination records a player leaving the alive set after the game started
type Elimination struct {
	Round    int    `json:"round"`
	UserID   string `json:"userId"`
	Votes    int    `json:"votes"`
	Forced   bool   `json:"forced,omitempty"`   // resolved by the voting deadline
	Departed bool   `json:"departed,omitempty"` // player left instead of being voted out
}

// Player looks up a player by user id
func (s *Session) Player(userID string) *Player {
	for _, p := range s.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// AlivePlayers returns the alive players in roster order
func (s *Session) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveCount counts alive players holding the given role
func (s *Session) AliveCount(role Role) int {
	n := 0
	for _, p := range s.Players {
		if p.IsAlive && p.Role == role {
			n++
		}
	}
	return n
}

// IsFull reports whether the roster reached capacity
func (s *Session) IsFull() bool {
	return len(s.Players) >= s.Capacity
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.Players != nil {
		c.Players = make([]*Player, len(s.Players))
		for i, p := range s.Players {
			cp := *p
			if p.Clues != nil {
				cp.Clues = append([]string{}, p.Clues...)
			}
			c.Players[i] = &cp
		}
	}
	if s.WordPair != nil {
		wp := *s.WordPair
		c.WordPair = &wp
	}
	if s.Eliminations != nil {
		c.Eliminations = append([]Elimination{}, s.Eliminations...)
	}
	c.StartedAt = cloneTime(s.StartedAt)
	c.EndedAt = cloneTime(s.EndedAt)
	c.VotingDeadline = cloneTime(s.VotingDeadline)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
