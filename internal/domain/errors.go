package domain

import "errors"

var (
	// ErrNotFound indicates the session does not exist
	ErrNotFound = errors.New("session not found")
	// ErrEmptyPrompt indicates a blank or whitespace-only prompt
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrInvalidModule indicates an unknown system module
	ErrInvalidModule = errors.New("unknown system module")
	// ErrInvalidSource indicates an unknown data source preference
	ErrInvalidSource = errors.New("unknown data source")
	// ErrBusy indicates a turn is already in flight for the session
	ErrBusy = errors.New("a turn is already in progress")
	// ErrStaleSession indicates the session was reset while the turn was in flight
	ErrStaleSession = errors.New("session was reset during the turn")
)
