// Package game implements the Who is the Wolf? session state machine.
//
// Every operation is synchronous and works on a *models.Session value owned
// by the caller. The host serializes calls per session and persists the result.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// Random is the uniform random source used for word and role selection and bot moves.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// Engine applies game operations to sessions using injected time, randomness and ids
type Engine struct {
	Clock        func() time.Time
	Random       Random
	Words        *WordBank
	NewID        func() string
	VotingWindow time.Duration
}

// NewEngine returns an engine wired to the wall clock, the global random source
// and the embedded word bank
func NewEngine() *Engine {
	return &Engine{
		Clock:        func() time.Time { return time.Now().UTC() },
		Random:       globalRandom{},
		Words:        DefaultWordBank(),
		NewID:        GenerateRoomCode,
		VotingWindow: DefaultVotingWindow,
	}
}

func (e *Engine) now() time.Time {
	return e.Clock()
}

func (e *Engine) deadline() *time.Time {
	d := e.now().Add(e.VotingWindow)
	return &d
}

func (e *Engine) end(s *models.Session, winner models.Winner) {
	now := e.now()
	s.Status = models.StatusEnded
	s.Winner = winner
	s.EndedAt = &now
	s.VotingDeadline = nil
}
