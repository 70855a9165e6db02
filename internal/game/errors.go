package game

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid session config")
	ErrGameFull           = errors.New("game is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrAlreadyJoined      = errors.New("already joined")
	ErrNotInGame          = errors.New("not in game")
	ErrGameAlreadyEnded   = errors.New("game already ended")
	ErrWrongPhase         = errors.New("wrong phase")
	ErrInvalidClueCount   = errors.New("invalid clues")
	ErrInvalidTarget      = errors.New("invalid vote target")
	ErrNotCreator         = errors.New("only the creator can do this")
	ErrEmptyWordBank      = errors.New("word bank is empty")
	ErrDuplicateWord      = errors.New("word appears more than once in the word bank")
)
