package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Tournament lifecycle errors
	ErrMsgAlreadyStarted        = "tournament already started"
	ErrMsgNotStarted            = "no current round"
	ErrMsgTournamentFinished    = "tournament is finished"
	ErrMsgTournamentNotFound    = "tournament not found"
	ErrMsgNotEnoughParticipants = "not enough participants"

	// Challenge errors
	ErrMsgResultMissing     = "challenge result missing"
	ErrMsgInvalidWinner     = "winner is not a contestant of the challenge"
	ErrMsgAlreadyPlayed     = "challenge already played"
	ErrMsgChallengeNotFound = "challenge not found"

	// Directory errors
	ErrMsgPlayerNotFound = "player not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Tournament lifecycle errors
	ErrAlreadyStarted        = errors.New(ErrMsgAlreadyStarted)
	ErrNotStarted            = errors.New(ErrMsgNotStarted)
	ErrTournamentFinished    = errors.New(ErrMsgTournamentFinished)
	ErrTournamentNotFound    = errors.New(ErrMsgTournamentNotFound)
	ErrNotEnoughParticipants = errors.New(ErrMsgNotEnoughParticipants)

	// Challenge errors
	ErrResultMissing     = errors.New(ErrMsgResultMissing)
	ErrInvalidWinner     = errors.New(ErrMsgInvalidWinner)
	ErrAlreadyPlayed     = errors.New(ErrMsgAlreadyPlayed)
	ErrChallengeNotFound = errors.New(ErrMsgChallengeNotFound)

	// Directory errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
