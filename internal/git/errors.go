package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTransport  = errors.New("transport failed")
)

// ConflictError is returned when an operation would discard local changes,
// including untracked files.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: local changes would be overwritten: %s", ErrConflict, strings.Join(e.Paths, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
