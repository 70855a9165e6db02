package store

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

var epoch = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

// sessionsAtEveryState plays one game and snapshots it in each status
func sessionsAtEveryState(t *testing.T, id string) map[models.GameStatus]*models.Session {
	t.Helper()
	e := &game.Engine{
		Clock:        func() time.Time { return epoch },
		Random:       rand.New(rand.NewPCG(11, 29)),
		Words:        game.DefaultWordBank(),
		NewID:        func() string { return id },
		VotingWindow: game.DefaultVotingWindow,
	}
	snapshots := make(map[models.GameStatus]*models.Session)

	s, err := e.Create("u1", "Una", 4, 1)
	require.NoError(t, err)
	_, err = e.Join(s, "u2", "Ugo")
	require.NoError(t, err)
	snapshots[models.StatusWaiting] = s.Clone()

	for i := 3; i <= 4; i++ {
		_, err = e.Join(s, fmt.Sprintf("u%d", i), fmt.Sprintf("User %d", i))
		require.NoError(t, err)
	}
	require.NoError(t, e.SubmitClues(s, "u1", []string{"one", "two", "three"}))
	snapshots[models.StatusClues] = s.Clone()

	for _, p := range s.Players[1:] {
		require.NoError(t, e.SubmitClues(s, p.UserID, []string{"one", "two", "three"}))
	}
	require.NoError(t, e.CastVote(s, "u1", "u2"))
	snapshots[models.StatusVoting] = s.Clone()

	for _, p := range s.Players {
		if p.Role == models.RoleMinority {
			require.NoError(t, e.Leave(s, p.UserID))
		}
	}
	require.Equal(t, models.StatusEnded, s.Status)
	snapshots[models.StatusEnded] = s.Clone()
	return snapshots
}
