package timer

import "errors"

var (
	// ErrNotFound indicates an operation referenced an unknown timer id.
	ErrNotFound = errors.New("timer not found")
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrIDGenerationExhausted indicates no free id was found within the attempt budget.
	ErrIDGenerationExhausted = errors.New("timer id generation exhausted")
)
