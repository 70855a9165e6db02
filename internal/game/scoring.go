package game

import "github.com/aaronzipp/who-is-the-wolf/internal/models"

// Awards computes the score changes of an ended session for its human players.
// It returns nil while the session is still running.
func Awards(s *models.Session) []models.Score {
	if s.Status != models.StatusEnded {
		return nil
	}
	awards := make([]models.Score, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsBot {
			continue
		}
		score := models.Score{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Points:      ParticipationPoints,
		}
		if p.Role == s.Winner {
			score.GamesWon = 1
			if p.Role == models.RoleMinority {
				score.Points += MinorityWinPoints
			} else {
				score.Points += MajorityWinPoints
			}
		} else {
			score.GamesLost = 1
		}
		awards = append(awards, score)
	}
	return awards
}
