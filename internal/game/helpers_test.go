package game_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

var epoch = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// seqRandom replays a fixed sequence of draws, each reduced modulo n
type seqRandom struct {
	seq []int
	i   int
}

func (r *seqRandom) IntN(n int) int {
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.i%len(r.seq)]
	r.i++
	return v % n
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(seq ...int) (*game.Engine, *fakeClock) {
	clock := &fakeClock{now: epoch}
	return &game.Engine{
		Clock:        clock.Now,
		Random:       &seqRandom{seq: seq},
		Words:        game.DefaultWordBank(),
		NewID:        func() string { return "ROOM42" },
		VotingWindow: game.DefaultVotingWindow,
	}, clock
}

func playerID(i int) string { return fmt.Sprintf("p%d", i) }

// newLobby creates a session with p1 as creator and joins p2..pn
func newLobby(t *testing.T, e *game.Engine, capacity, minority, n int) *models.Session {
	t.Helper()
	s, err := e.Create(playerID(1), "Player 1", capacity, minority)
	require.NoError(t, err)
	for i := 2; i <= n; i++ {
		_, err := e.Join(s, playerID(i), fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
	}
	return s
}

// newVotingSession fills a six seat session and submits everyone's clues
func newVotingSession(t *testing.T, e *game.Engine) *models.Session {
	t.Helper()
	s := newLobby(t, e, 6, 1, 6)
	for _, p := range s.Players {
		require.NoError(t, e.SubmitClues(s, p.UserID, []string{"a", "b", "c"}))
	}
	require.Equal(t, models.StatusVoting, s.Status)
	return s
}

func minorityIDs(s *models.Session) []string {
	var ids []string
	for _, p := range s.Players {
		if p.Role == models.RoleMinority {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

func requireRoleWordInvariant(t *testing.T, s *models.Session) {
	t.Helper()
	for _, p := range s.Players {
		require.Equal(t, p.Role == models.RoleUnassigned, p.Word == "", "player %s role=%q word=%q", p.UserID, p.Role, p.Word)
		require.True(t, len(p.Clues) == 0 || len(p.Clues) == game.CluesPerPlayer)
	}
}
