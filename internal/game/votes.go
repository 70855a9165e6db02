package game

import (
	"fmt"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// CastVote records voterID's suspect. A vote may be changed until the round resolves.
// The vote that completes the round triggers resolution.
func (e *Engine) CastVote(s *models.Session, voterID, targetID string) error {
	if s.Status != models.StatusVoting {
		return ErrWrongPhase
	}
	voter := s.Player(voterID)
	if voter == nil || !voter.IsAlive {
		return fmt.Errorf("%w: voter %q is not an alive player", ErrInvalidTarget, voterID)
	}
	target := s.Player(targetID)
	if target == nil || !target.IsAlive {
		return fmt.Errorf("%w: %q is not an alive player", ErrInvalidTarget, targetID)
	}
	if voterID == targetID {
		return fmt.Errorf("%w: cannot vote for yourself", ErrInvalidTarget)
	}

	voter.VotedFor = targetID
	if AllVoted(s) {
		e.resolve(s, false)
	}
	return nil
}

// ForceResolve closes the current round with whatever votes exist; missing votes
// count as abstentions. It is the host's path once the voting deadline passed.
func (e *Engine) ForceResolve(s *models.Session) error {
	if s.Status != models.StatusVoting {
		return ErrWrongPhase
	}
	e.resolve(s, true)
	return nil
}

// resolve eliminates the most voted player and either ends the game or opens a new round
func (e *Engine) resolve(s *models.Session, forced bool) {
	result := CountVotes(s)
	if result.MostVoted == "" {
		s.VotingDeadline = e.deadline()
		return
	}

	eliminated := s.Player(result.MostVoted)
	eliminated.IsAlive = false
	s.Eliminations = append(s.Eliminations, models.Elimination{
		Round:  s.Round,
		UserID: eliminated.UserID,
		Votes:  result.VoteCount[eliminated.UserID],
		Forced: forced,
	})

	if eliminated.Role == models.RoleMinority {
		e.end(s, models.RoleMajority)
		return
	}
	if winner, over := winnerAfterElimination(s); over {
		e.end(s, winner)
		return
	}

	for _, p := range s.Players {
		if p.IsAlive {
			p.VotedFor = ""
		}
	}
	s.Round++
	s.VotingDeadline = e.deadline()
}
