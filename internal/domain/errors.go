package domain

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session has expired")
	ErrSessionNotAccepting = errors.New("session is not accepting submissions")
	ErrNoTrophies          = errors.New("cannot start presentation without trophies")
)

// Trophy errors
var (
	ErrTrophyNotFound = errors.New("trophy not found")
)

// ValidationError reports the first field that failed submission validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
