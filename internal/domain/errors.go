package domain

import "errors"

var (
	ErrNotConnected   = errors.New("automation client is not connected")
	ErrRunActive      = errors.New("a run is already active")
	ErrRunDraining    = errors.New("previous run is still finishing")
	ErrWrongPhase     = errors.New("action not allowed in current phase")
	ErrIncompleteSpec = errors.New("task specification is incomplete")
	ErrNothingToStop  = errors.New("nothing to stop")
	ErrEmptyInput     = errors.New("input is empty")
	ErrNoParticipants = errors.New("no valid participants")
	ErrUnknownAction  = errors.New("unknown action")

	ErrFileNotFound   = errors.New("file not found")
	ErrNoPendingFile  = errors.New("no pending upload")
	ErrUnsupportedDoc = errors.New("only .txt files are accepted")

	ErrUnknownBot   = errors.New("unknown bot")
	ErrTokenMissing = errors.New("bot token is not configured")
)
