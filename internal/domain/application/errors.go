package application

import (
	"errors"
	"fmt"

	"github.com/honeycarbs/job-finder/internal/domain"
)

var (
	// ErrSubmitInProgress rejects mutations while a create/update is outstanding
	ErrSubmitInProgress = errors.New("application: submit already in progress")
	// ErrNotSubmitted is returned by Reset outside Submitted mode
	ErrNotSubmitted = errors.New("application: reset requires a submitted application")
	// ErrJobRoleRequired blocks Submit on an empty jobRole
	ErrJobRoleRequired = &ValidationError{Field: domain.FieldJobRole, Message: "jobRole required"}
)

// ValidationError reports a field value the session refuses
type ValidationError struct {
	Field   domain.Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError reports a failed create or update against the store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("application: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed fetch of the latest record.
// Initialize recovers from it and starts an empty session.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("application: fetch latest failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func asPersistenceError(op string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
