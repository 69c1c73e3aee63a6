package domain

import (
	"errors"
	"fmt"
)

// Classification sentinels. Every error surfaced by the stores matches
// exactly one of these via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrRemote     = errors.New("remote call failed")
)

// Validation errors. Rejected before any state change or network call.
var (
	ErrEmptyTitle   = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTitleTooLong = fmt.Errorf("%w: title exceeds %d characters", ErrValidation, MaxTitleLen)
	ErrTaskLimit    = fmt.Errorf("%w: list already has %d tasks", ErrValidation, MaxTasksPerList)
	ErrListLimit    = fmt.Errorf("%w: user already has %d lists", ErrValidation, MaxListsPerUser)
	ErrInvalidOrder = fmt.Errorf("%w: order values must be >= 1", ErrValidation)
)

// Lookup errors. The referenced id is absent from the local scope.
var (
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
	ErrListNotFound = fmt.Errorf("%w: list", ErrNotFound)
)

// RemoteError reports a failed network or server call. The store has
// already rolled local state back by the time the caller sees one.
type RemoteError struct {
	Op         string // operation that failed, e.g. "create task"
	StatusCode int    // HTTP status, 0 for transport failures
	Err        error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap lets errors.Is match both ErrRemote and the underlying cause.
func (e *RemoteError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRemote, e.Err}
	}
	return []error{ErrRemote}
}
