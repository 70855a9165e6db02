package game

import "time"

const (
	// MinCapacity is the smallest roster a session can be created with
	MinCapacity = 3

	// MaxCapacity is the largest roster a session can be created with
	MaxCapacity = 20

	// DefaultCapacity is the roster size that starts a game in the reference setup
	DefaultCapacity = 6

	// DefaultMinorityCount is the number of wolves dealt in the reference setup
	DefaultMinorityCount = 1

	// CluesPerPlayer is the exact number of clues each player submits
	CluesPerPlayer = 3

	// MaxClueLength bounds a single clue, in runes
	MaxClueLength = 64

	// DefaultVotingWindow is the advisory time each voting round gets
	DefaultVotingWindow = 24 * time.Hour

	// ParticipationPoints is awarded to every human player of an ended game
	ParticipationPoints = 2

	// MajorityWinPoints is added for each sheep when the sheep win
	MajorityWinPoints = 10

	// MinorityWinPoints is added for each wolf when the wolves win
	MinorityWinPoints = 15

	// RoomCodeLength is the length of generated session ids
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating session ids (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
