package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnbalancedJournal indicates debit and credit totals of a journal do not
// match in primary currency. Rejected before any write.
var ErrUnbalancedJournal = errors.New("journal debit and credit totals do not balance")

// ErrParentAccountPosting indicates an entry targets a parent/summary account.
var ErrParentAccountPosting = errors.New("cannot post entries to a parent account")

// ErrImmutableFieldChanged indicates an attempt to alter a field that is fixed
// after creation (branch, fiscal year, an account's balance type once entries exist).
var ErrImmutableFieldChanged = errors.New("immutable field cannot be changed")

// ErrAccountHierarchyCycle indicates a loop in the account parent/child graph.
// This is a data-integrity failure, not a user input error.
var ErrAccountHierarchyCycle = errors.New("cycle detected in account hierarchy")

// ErrDeletionBlocked indicates a delete was rejected because dependent records exist.
var ErrDeletionBlocked = errors.New("deletion blocked by dependent records")

// AppError carries an HTTP-ish status code alongside a message and wrapped cause.
// Repositories use it to surface infrastructure failures distinctly from the
// sentinel domain errors above.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
