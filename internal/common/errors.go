// Package common provides shared errors and logging helpers.
package common

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// Lookup errors.
	ErrNotFound     = errors.New("not found")
	ErrUnknownView  = errors.New("unknown view")
	ErrUnknownLabel = errors.New("unknown drilldown label")

	// Data source errors.
	ErrEmptySnapshot = errors.New("snapshot has not been imported")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsNotFound reports whether err means a view, label or row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnknownView) ||
		errors.Is(err, ErrUnknownLabel)
}
