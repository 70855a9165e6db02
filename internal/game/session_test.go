package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

func TestCreate(t *testing.T) {
	e, _ := newTestEngine()
	s, err := e.Create("host", "Host", 6, 1)
	require.NoError(t, err)

	assert.Equal(t, "ROOM42", s.ID)
	assert.Equal(t, "host", s.CreatorID)
	assert.Equal(t, models.StatusWaiting, s.Status)
	assert.Equal(t, epoch, s.CreatedAt)
	require.Len(t, s.Players, 1)
	assert.Equal(t, models.RoleUnassigned, s.Players[0].Role)
	assert.True(t, s.Players[0].IsAlive)
	assert.Nil(t, s.StartedAt)
	requireRoleWordInvariant(t, s)
}

func TestCreateInvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		minority int
	}{
		{"capacity below three", 2, 1},
		{"capacity above limit", game.MaxCapacity + 1, 1},
		{"huge capacity", 30000, 1},
		{"no minority", 6, 0},
		{"negative minority", 6, -1},
		{"minority equals capacity", 4, 4},
		{"minority above capacity", 4, 5},
	}
	e, _ := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := e.Create("host", "Host", tt.capacity, tt.minority)
			assert.ErrorIs(t, err, game.ErrInvalidConfig)
			assert.Nil(t, s)
		})
	}
}

func TestSixthJoinStartsGame(t *testing.T) {
	// word pair 0, minority at roster index 2
	e, clock := newTestEngine(0, 2)
	s := newLobby(t, e, 6, 1, 5)
	assert.Equal(t, models.StatusWaiting, s.Status)
	requireRoleWordInvariant(t, s)

	clock.Advance(5)
	p, err := e.Join(s, "p6", "Player 6")
	require.NoError(t, err)
	assert.Equal(t, "p6", p.UserID)

	assert.Equal(t, models.StatusClues, s.Status)
	require.NotNil(t, s.StartedAt)
	assert.Equal(t, clock.now, *s.StartedAt)
	assert.Equal(t, []string{"p3"}, minorityIDs(s))
	require.NotNil(t, s.WordPair)
	assert.Equal(t, models.WordPair{Majority: "Apple", Minority: "Orange"}, *s.WordPair)
	for _, pl := range s.Players {
		assert.Equal(t, s.WordPair.WordFor(pl.Role), pl.Word)
	}
	requireRoleWordInvariant(t, s)
}

func TestJoinErrors(t *testing.T) {
	e, _ := newTestEngine()

	t.Run("duplicate", func(t *testing.T) {
		s := newLobby(t, e, 6, 1, 3)
		_, err := e.Join(s, "p2", "again")
		assert.ErrorIs(t, err, game.ErrAlreadyJoined)
		assert.Len(t, s.Players, 3)
	})

	t.Run("started", func(t *testing.T) {
		s := newLobby(t, e, 6, 1, 6)
		_, err := e.Join(s, "p7", "late")
		assert.ErrorIs(t, err, game.ErrGameAlreadyStarted)
	})

	t.Run("retried capacity join", func(t *testing.T) {
		s := newLobby(t, e, 6, 1, 6)
		_, err := e.Join(s, "p6", "Player 6")
		assert.ErrorIs(t, err, game.ErrGameAlreadyStarted)
		assert.Len(t, s.Players, 6)
	})

	t.Run("ended", func(t *testing.T) {
		s := newLobby(t, e, 6, 1, 6)
		s.Status = models.StatusEnded
		_, err := e.Join(s, "p7", "late")
		assert.ErrorIs(t, err, game.ErrGameAlreadyEnded)
	})

	t.Run("full", func(t *testing.T) {
		s := newLobby(t, e, 6, 1, 3)
		s.Capacity = 3
		_, err := e.Join(s, "p4", "Player 4")
		assert.ErrorIs(t, err, game.ErrGameFull)
		assert.Len(t, s.Players, 3)
	})
}

func TestRoleAssignmentDealsExactMinorityCount(t *testing.T) {
	for _, cfg := range []struct{ capacity, minority int }{{3, 1}, {6, 1}, {6, 2}, {7, 3}, {10, 9}} {
		for seed := uint64(0); seed < 50; seed++ {
			e, _ := newTestEngine()
			e.Random = rand.New(rand.NewPCG(seed, seed*7+1))
			s := newLobby(t, e, cfg.capacity, cfg.minority, cfg.capacity)

			require.Equal(t, models.StatusClues, s.Status)
			require.Len(t, minorityIDs(s), cfg.minority, "capacity=%d seed=%d", cfg.capacity, seed)
			requireRoleWordInvariant(t, s)
		}
	}
}

func TestRoleAssignmentWithSeveralMinorities(t *testing.T) {
	// pair 0, then swaps pick roster indexes 6 and 1
	e, _ := newTestEngine(0, 6, 0)
	s := newLobby(t, e, 7, 2, 7)
	assert.ElementsMatch(t, []string{"p7", "p2"}, minorityIDs(s))
}

func TestLeaveWaiting(t *testing.T) {
	e, _ := newTestEngine()
	s := newLobby(t, e, 3, 1, 2)

	require.NoError(t, e.Leave(s, "p1"))
	require.Len(t, s.Players, 1)
	assert.Equal(t, "p2", s.CreatorID)

	_, err := e.Join(s, "p3", "Player 3")
	require.NoError(t, err)
	_, err = e.Join(s, "p4", "Player 4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClues, s.Status)
}

func TestLeaveErrors(t *testing.T) {
	e, _ := newTestEngine(0, 2)
	s := newLobby(t, e, 6, 1, 6)

	assert.ErrorIs(t, e.Leave(s, "nobody"), game.ErrNotInGame)

	require.NoError(t, e.Leave(s, "p1"))
	assert.ErrorIs(t, e.Leave(s, "p1"), game.ErrNotInGame)

	require.NoError(t, e.Leave(s, "p3"))
	assert.ErrorIs(t, e.Leave(s, "p2"), game.ErrGameAlreadyEnded)
}

func TestLeaveMinorityDuringVotingEndsGame(t *testing.T) {
	e, clock := newTestEngine(0, 2)
	s := newVotingSession(t, e)
	require.NoError(t, e.CastVote(s, "p1", "p2"))

	clock.Advance(10)
	require.NoError(t, e.Leave(s, "p3"))

	assert.Equal(t, models.StatusEnded, s.Status)
	assert.Equal(t, models.RoleMajority, s.Winner)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, clock.now, *s.EndedAt)
	assert.Len(t, s.Players, 6)
	assert.False(t, s.Player("p3").IsAlive)
	require.Len(t, s.Eliminations, 1)
	assert.True(t, s.Eliminations[0].Departed)
}

func TestLeaveMajorityKeepsGameRunning(t *testing.T) {
	e, _ := newTestEngine(0, 2)
	s := newVotingSession(t, e)
	require.NoError(t, e.CastVote(s, "p1", "p4"))
	require.NoError(t, e.CastVote(s, "p2", "p5"))

	require.NoError(t, e.Leave(s, "p4"))

	assert.Equal(t, models.StatusVoting, s.Status)
	assert.False(t, s.Player("p4").IsAlive)
	assert.Empty(t, s.Player("p1").VotedFor, "votes for a departed player are cleared")
	assert.Equal(t, "p5", s.Player("p2").VotedFor)
	assert.Len(t, s.AlivePlayers(), 5)
}

func TestLeaveDuringCluesDoesNotStall(t *testing.T) {
	e, _ := newTestEngine(0, 2)
	s := newLobby(t, e, 6, 1, 6)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		require.NoError(t, e.SubmitClues(s, id, []string{"a", "b", "c"}))
	}
	require.Equal(t, models.StatusClues, s.Status)

	require.NoError(t, e.Leave(s, "p6"))

	assert.Equal(t, models.StatusVoting, s.Status)
	assert.Equal(t, 1, s.Round)
}
