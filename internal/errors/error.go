package errors

import "errors"

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrCreateMatchFailed     = errors.New("create match failed")
	ErrMatchFull             = errors.New("match already has two players")
	ErrPlayerNotInMatch      = errors.New("user is not a player in this match")
	ErrInvalidBoard          = errors.New("invalid board")
	ErrSessionNotFound       = errors.New("session was not found")
	ErrInvalidUsername       = errors.New("invalid username")
	ErrSuggestionUnavailable = errors.New("move suggestion service is unavailable")
	ErrMalformedSuggestion   = errors.New("malformed move suggestion")
	ErrMatchInProgress       = errors.New("match is still in progress")
	ErrInternal              = errors.New("internal error")
)
