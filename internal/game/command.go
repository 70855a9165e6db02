package game

import "github.com/aaronzipp/who-is-the-wolf/internal/models"

// Command is one player or host action against a session.
// The set of commands is closed: only the types in this file implement it.
type Command interface {
	Name() string
	apply(e *Engine, s *models.Session) error
}

// JoinCommand enrolls UserID in a waiting session
type JoinCommand struct {
	UserID      string
	DisplayName string
}

// LeaveCommand removes or departs UserID
type LeaveCommand struct {
	UserID string
}

// SubmitCluesCommand stores UserID's three clues
type SubmitCluesCommand struct {
	UserID string
	Clues  []string
}

// CastVoteCommand names TargetID as VoterID's suspect
type CastVoteCommand struct {
	VoterID  string
	TargetID string
}

// ForceResolveCommand resolves the current voting round after its deadline
type ForceResolveCommand struct{}

// AddBotsCommand fills the remaining seats with computer players
type AddBotsCommand struct {
	RequesterID string
}

func (JoinCommand) Name() string         { return "join" }
func (LeaveCommand) Name() string        { return "leave" }
func (SubmitCluesCommand) Name() string  { return "submit_clues" }
func (CastVoteCommand) Name() string     { return "cast_vote" }
func (ForceResolveCommand) Name() string { return "force_resolve" }
func (AddBotsCommand) Name() string      { return "add_bots" }

func (c JoinCommand) apply(e *Engine, s *models.Session) error {
	_, err := e.Join(s, c.UserID, c.DisplayName)
	return err
}

func (c LeaveCommand) apply(e *Engine, s *models.Session) error {
	return e.Leave(s, c.UserID)
}

func (c SubmitCluesCommand) apply(e *Engine, s *models.Session) error {
	return e.SubmitClues(s, c.UserID, c.Clues)
}

func (c CastVoteCommand) apply(e *Engine, s *models.Session) error {
	return e.CastVote(s, c.VoterID, c.TargetID)
}

func (ForceResolveCommand) apply(e *Engine, s *models.Session) error {
	return e.ForceResolve(s)
}

func (c AddBotsCommand) apply(e *Engine, s *models.Session) error {
	return e.AddBots(s, c.RequesterID)
}

// Apply runs cmd against a copy of s and lets computer players take their turns.
// On error s is left untouched and no new session is returned.
func (e *Engine) Apply(s *models.Session, cmd Command) (*models.Session, error) {
	next := s.Clone()
	if err := cmd.apply(e, next); err != nil {
		return nil, err
	}
	e.PlayBots(next)
	return next, nil
}
