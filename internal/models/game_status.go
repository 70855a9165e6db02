package models

// GameStatus represents the current state of the game
type GameStatus string

const (
	StatusWaiting GameStatus = "waiting"
	StatusClues   GameStatus = "clues"
	StatusVoting  GameStatus = "voting"
	StatusEnded   GameStatus = "ended"
)

// Role is the team a player belongs to once roles are dealt
type Role string

const (
	RoleUnassigned Role = ""
	RoleMajority   Role = "sheep"
	RoleMinority   Role = "wolf"
)

// Winner reports which side won an ended session
type Winner = Role
