package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

var errNotDue = errors.New("voting deadline not reached")

// RunSweeper force-resolves overdue voting rounds every interval until ctx is done
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info().Str("module", "service.sweeper").Dur("interval", interval).Msg("sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "service.sweeper").Msg("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Str("module", "service.sweeper").Msg("sweep failed")
			}
		}
	}
}

// Sweep resolves every voting round whose deadline has passed and
// returns how many rounds it closed
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	active, err := m.store.Active(ctx)
	if err != nil {
		return 0, err
	}
	resolved := 0
	for _, l := range active {
		if l.Status != models.StatusVoting {
			continue
		}
		_, err := m.execute(ctx, l.ID, game.ForceResolveCommand{}, m.overdue)
		switch {
		case errors.Is(err, errNotDue), errors.Is(err, game.ErrWrongPhase):
			// a vote moved the session on since it was listed
		case err != nil:
			log.Error().Err(err).Str("module", "service.sweeper").Str("session", l.ID).Msg("force resolve failed")
		default:
			resolved++
		}
	}
	if resolved > 0 {
		log.Info().Str("module", "service.sweeper").Int("resolved", resolved).Msg("overdue rounds resolved")
	}
	return resolved, nil
}

// overdue accepts voting sessions whose deadline lies in the past
func (m *Manager) overdue(s *models.Session) error {
	if s.Status != models.StatusVoting {
		return game.ErrWrongPhase
	}
	if s.VotingDeadline == nil || m.engine.Clock().Before(*s.VotingDeadline) {
		return errNotDue
	}
	return nil
}
