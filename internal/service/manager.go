// Package service hosts game sessions: it serializes commands per session,
// persists every transition, records scores and pushes live updates.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
	"github.com/aaronzipp/who-is-the-wolf/internal/render"
	"github.com/aaronzipp/who-is-the-wolf/internal/sse"
	"github.com/aaronzipp/who-is-the-wolf/internal/store"
)

// maxIDAttempts bounds the search for an unused room code
const maxIDAttempts = 10

// ErrNoFreeID is returned when every generated room code was taken
var ErrNoFreeID = errors.New("could not allocate a session id")

// Manager runs commands against stored sessions
type Manager struct {
	engine *game.Engine
	store  store.Store
	hub    *sse.Hub

	locks sync.Map // session id -> *sync.Mutex
}

// NewManager wires the engine to a store and a live update hub
func NewManager(engine *game.Engine, st store.Store, hub *sse.Hub) *Manager {
	return &Manager{engine: engine, store: st, hub: hub}
}

// Hub returns the hub live clients subscribe to
func (m *Manager) Hub() *sse.Hub {
	return m.hub
}

func (m *Manager) lock(id string) func() {
	v, _ := m.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Create opens a session under a fresh room code with the creator enrolled
func (m *Manager) Create(ctx context.Context, creatorID, displayName string, capacity, minorityCount int) (*models.Session, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		s, err := m.engine.Create(creatorID, displayName, capacity, minorityCount)
		if err != nil {
			return nil, err
		}
		created, err := m.claim(ctx, s)
		if err != nil {
			return nil, err
		}
		if !created {
			continue
		}
		log.Info().Str("module", "service.manager").Str("session", s.ID).Str("creator", creatorID).
			Int("capacity", capacity).Int("minority", minorityCount).Msg("session created")
		return s, nil
	}
	return nil, ErrNoFreeID
}

// claim saves s unless its id is already taken; the id lock is held across
// the check and the write so two creators drawing one code cannot both win
func (m *Manager) claim(ctx context.Context, s *models.Session) (bool, error) {
	unlock := m.lock(s.ID)
	defer unlock()
	taken, err := m.store.Exists(ctx, s.ID)
	if err != nil {
		return false, fmt.Errorf("checking session id: %w", err)
	}
	if taken {
		return false, nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		return false, fmt.Errorf("saving new session: %w", err)
	}
	return true, nil
}

// Get returns the current state of a session
func (m *Manager) Get(ctx context.Context, id string) (*models.Session, error) {
	return m.store.Load(ctx, id)
}

// Execute applies cmd to the session under its lock and persists the result.
// Rejected commands leave the stored session unchanged.
func (m *Manager) Execute(ctx context.Context, id string, cmd game.Command) (*models.Session, error) {
	return m.execute(ctx, id, cmd, nil)
}

// execute runs cmd once guard, if any, accepted the freshly loaded session
func (m *Manager) execute(ctx context.Context, id string, cmd game.Command, guard func(*models.Session) error) (*models.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	current, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return nil, err
		}
	}
	next, err := m.engine.Apply(current, cmd)
	if err != nil {
		log.Debug().Str("module", "service.manager").Str("session", id).Str("command", cmd.Name()).
			Err(err).Msg("command rejected")
		return nil, err
	}
	ended := current.Status != models.StatusEnded && next.Status == models.StatusEnded
	var awards []models.Score
	if ended {
		awards = game.Awards(next)
		err = m.store.Finish(ctx, next, awards)
	} else {
		err = m.store.Save(ctx, next)
	}
	if err != nil {
		return nil, fmt.Errorf("saving session %s: %w", id, err)
	}

	logger := log.Info().Str("module", "service.manager").Str("session", id).Str("command", cmd.Name())
	if current.Status != next.Status {
		logger = logger.Str("from", string(current.Status)).Str("to", string(next.Status))
	}
	logger.Msg("command applied")

	if ended {
		log.Info().Str("module", "service.manager").Str("session", id).Str("winner", string(next.Winner)).
			Int("awards", len(awards)).Msg("game ended")
		m.announceScores(next, awards)
	}
	m.publish(next)
	return next, nil
}

func (m *Manager) announceScores(s *models.Session, awards []models.Score) {
	if m.hub == nil {
		return
	}
	data, err := json.Marshal(awards)
	if err != nil {
		log.Error().Err(err).Str("module", "service.manager").Str("session", s.ID).Msg("encoding score update")
		return
	}
	m.hub.Broadcast(s.ID, sse.EventScoreUpdate, data)
}

// publish pushes each subscriber's view; an ended session is followed by a
// closed event after which clients stop listening
func (m *Manager) publish(s *models.Session) {
	if m.hub == nil {
		return
	}
	m.hub.BroadcastPersonalized(s.ID, sse.EventState, func(userID string) ([]byte, error) {
		return render.SessionJSON(s, userID)
	})
	if s.Status == models.StatusEnded {
		data, _ := json.Marshal(map[string]string{"id": s.ID, "winner": string(s.Winner)})
		m.hub.Broadcast(s.ID, sse.EventClosed, data)
	}
}

// OpenLobbies lists the sessions still waiting for players
func (m *Manager) OpenLobbies(ctx context.Context) ([]models.Lobby, error) {
	active, err := m.store.Active(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]models.Lobby, 0, len(active))
	for _, l := range active {
		if l.Status == models.StatusWaiting && l.PlayerCount > 0 {
			open = append(open, l)
		}
	}
	return open, nil
}

// Scoreboard returns the best players across all games
func (m *Manager) Scoreboard(ctx context.Context, limit int) ([]models.Score, error) {
	return m.store.TopScores(ctx, limit)
}
