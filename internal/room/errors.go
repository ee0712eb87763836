package room

import "errors"

// State-conflict errors: the call is rejected, room state is untouched and
// nothing is broadcast.
var (
	ErrRoomFull        = errors.New("room is full")
	ErrWrongMode       = errors.New("operation does not match room mode")
	ErrRoundOutOfRange = errors.New("round index out of range")
	ErrQuizCompleted   = errors.New("quiz is already completed")
	ErrOutOfSync       = errors.New("question is not the current one")
	ErrStaleSummary    = errors.New("summary inputs changed since generation")
	ErrSummaryNotReady = errors.New("quiz summary requires a completed run with two participants")
)

var (
	// ErrNotParticipant rejects decisions from a clientId that never joined.
	ErrNotParticipant = errors.New("client has not joined this room")

	// ErrUnknownOption rejects an optionId the question does not offer.
	ErrUnknownOption = errors.New("unknown option for question")

	// ErrPackTooSmall rejects quiz creation when the pack pool is shorter
	// than the session length.
	ErrPackTooSmall = errors.New("question pack has too few questions")
)
