package game_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

func TestCommandNames(t *testing.T) {
	tests := []struct {
		cmd  game.Command
		name string
	}{
		{game.JoinCommand{}, "join"},
		{game.LeaveCommand{}, "leave"},
		{game.SubmitCluesCommand{}, "submit_clues"},
		{game.CastVoteCommand{}, "cast_vote"},
		{game.ForceResolveCommand{}, "force_resolve"},
		{game.AddBotsCommand{}, "add_bots"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.cmd.Name())
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	e, _ := newTestEngine(0, 2)
	s := newLobby(t, e, 6, 1, 5)

	next, err := e.Apply(s, game.JoinCommand{UserID: "p6", DisplayName: "Player 6"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusClues, next.Status)
	assert.Len(t, next.Players, 6)
	assert.Equal(t, models.StatusWaiting, s.Status)
	assert.Len(t, s.Players, 5)
	for _, p := range s.Players {
		assert.Equal(t, models.RoleUnassigned, p.Role)
	}
}

func TestApplyErrorReturnsNoSession(t *testing.T) {
	e, _ := newTestEngine(0, 2)
	s := newLobby(t, e, 6, 1, 6)

	next, err := e.Apply(s, game.CastVoteCommand{VoterID: "p1", TargetID: "p2"})
	assert.ErrorIs(t, err, game.ErrWrongPhase)
	assert.Nil(t, next)

	next, err = e.Apply(s, game.SubmitCluesCommand{UserID: "p1", Clues: []string{"a"}})
	assert.ErrorIs(t, err, game.ErrInvalidClueCount)
	assert.Nil(t, next)
	assert.Empty(t, s.Player("p1").Clues)
}

func TestAddBotsRequiresCreator(t *testing.T) {
	e, _ := newTestEngine()
	s := newLobby(t, e, 6, 1, 2)

	_, err := e.Apply(s, game.AddBotsCommand{RequesterID: "p2"})
	assert.ErrorIs(t, err, game.ErrNotCreator)

	started := newLobby(t, e, 3, 1, 3)
	_, err = e.Apply(started, game.AddBotsCommand{RequesterID: "p1"})
	assert.ErrorIs(t, err, game.ErrGameAlreadyStarted)
}

func TestAddBotsFillsLobbyAndBotsPlay(t *testing.T) {
	// every draw is zero, so p1 holds the minority word
	e, _ := newTestEngine()
	s, err := e.Create("p1", "Player 1", 6, 1)
	require.NoError(t, err)

	s, err = e.Apply(s, game.AddBotsCommand{RequesterID: "p1"})
	require.NoError(t, err)

	require.Len(t, s.Players, 6)
	assert.Equal(t, models.StatusClues, s.Status)
	assert.Equal(t, []string{"p1"}, minorityIDs(s))
	for i, p := range s.Players[1:] {
		assert.True(t, p.IsBot)
		assert.True(t, strings.HasPrefix(p.UserID, game.BotIDPrefix))
		assert.NotEmpty(t, p.DisplayName, "bot %d", i)
		assert.True(t, p.HasClues(), "bot %s should have submitted clues", p.UserID)
		assert.Subset(t, e.Words.Clues(p.Word), p.Clues)
	}
	assert.Empty(t, s.Player("p1").Clues)

	s, err = e.Apply(s, game.SubmitCluesCommand{UserID: "p1", Clues: []string{"citrus", "round", "peel"}})
	require.NoError(t, err)
	require.Equal(t, models.StatusVoting, s.Status)
	for _, p := range s.Players[1:] {
		assert.Equal(t, "p1", p.VotedFor)
	}

	s, err = e.Apply(s, game.CastVoteCommand{VoterID: "p1", TargetID: "bot-1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnded, s.Status)
	assert.Equal(t, models.RoleMajority, s.Winner)

	awards := game.Awards(s)
	require.Len(t, awards, 1)
	assert.Equal(t, models.Score{UserID: "p1", DisplayName: "Player 1", Points: game.ParticipationPoints, GamesLost: 1}, awards[0])
}

func TestBotsPlayToTheEnd(t *testing.T) {
	// the fourth seat (bot-3) draws the minority word
	e, _ := newTestEngine(0, 3)
	s, err := e.Create("p1", "Player 1", 6, 1)
	require.NoError(t, err)
	s, err = e.Apply(s, game.AddBotsCommand{RequesterID: "p1"})
	require.NoError(t, err)
	require.Equal(t, []string{"bot-3"}, minorityIDs(s))

	s, err = e.Apply(s, game.LeaveCommand{UserID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusEnded, s.Status)
	assert.NotEmpty(t, s.Winner)
	require.NotEmpty(t, s.Eliminations)
	assert.True(t, s.Eliminations[0].Departed)
	for i, el := range s.Eliminations[1:] {
		assert.Equal(t, i+1, el.Round, "one elimination per voting round")
		assert.False(t, el.Departed)
	}
	assert.Len(t, s.AlivePlayers(), len(s.Players)-len(s.Eliminations))
}

func TestAddBotsSkipsTakenIDs(t *testing.T) {
	e, _ := newTestEngine()
	s := newLobby(t, e, 4, 1, 1)
	_, err := e.Join(s, "bot-1", "Impostor")
	require.NoError(t, err)

	require.NoError(t, e.AddBots(s, "p1"))
	ids := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.UserID)
	}
	assert.Equal(t, []string{"p1", "bot-1", "bot-2", "bot-3"}, ids)
	assert.False(t, s.Player("bot-1").IsBot)
}

func TestBotGame(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		e, _ := newTestEngine()
		e.Random = rand.New(rand.NewPCG(seed, 99))

		s, err := e.BotGame(7, 2)
		require.NoError(t, err)
		require.Equal(t, models.StatusEnded, s.Status, "seed %d", seed)
		assert.NotEmpty(t, s.Winner)
		for _, p := range s.Players {
			assert.True(t, p.IsBot)
		}
		for i, el := range s.Eliminations {
			assert.Equal(t, i+1, el.Round)
		}
		assert.Empty(t, game.Awards(s))
	}

	_, err := game.NewEngine().BotGame(2, 1)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}
