package game

import (
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// VoteResult represents the outcome of vote counting
type VoteResult struct {
	MostVoted string // empty when no vote was cast
	IsTie     bool
	Tied      []string // candidates sharing the maximum, in roster order
	VoteCount map[string]int
	Cast      int
}

// CountVotes tallies the votes of alive players. Ties go to the candidate
// that appears first in the roster, which is the earliest to have joined.
func CountVotes(s *models.Session) *VoteResult {
	result := &VoteResult{VoteCount: make(map[string]int)}
	for _, p := range s.Players {
		if p.IsAlive && p.HasVoted() {
			result.VoteCount[p.VotedFor]++
			result.Cast++
		}
	}

	maxVotes := 0
	for _, p := range s.Players {
		count := result.VoteCount[p.UserID]
		if !p.IsAlive || count == 0 {
			continue
		}
		if count > maxVotes {
			maxVotes = count
			result.Tied = []string{p.UserID}
		} else if count == maxVotes {
			result.Tied = append(result.Tied, p.UserID)
		}
	}

	result.IsTie = len(result.Tied) > 1
	if len(result.Tied) > 0 {
		result.MostVoted = result.Tied[0]
	}
	return result
}

// AllVoted reports whether every alive player has named a suspect
func AllVoted(s *models.Session) bool {
	for _, p := range s.Players {
		if p.IsAlive && !p.HasVoted() {
			return false
		}
	}
	return true
}

// winnerAfterElimination evaluates the win condition after a sheep was removed
func winnerAfterElimination(s *models.Session) (models.Winner, bool) {
	if s.AliveCount(models.RoleMinority) >= s.AliveCount(models.RoleMajority) {
		return models.RoleMinority, true
	}
	return models.RoleUnassigned, false
}
