package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when an edit addresses an unknown task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnknownField is returned for a field name the form does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidForm is returned when submit is attempted on an incomplete form.
	ErrInvalidForm = errors.New("form is not valid")

	// ErrSubmitInProgress is returned when a cycle is already running.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrBatchNotFound is returned when the journal has no such batch.
	ErrBatchNotFound = errors.New("batch not found")
)

// DispatchError is raised by a sink before or during a send attempt.
// Ordinal is the 1-based position of the record in its batch.
type DispatchError struct {
	Ordinal int
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch record %d: %v", e.Ordinal, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
