// Package store implements the persistence layer of postmux: thin query
// wrappers over a shared gorm connection, one type per entity collection.
// It should not include:
// 1. Any HTTP or rendering concern
// 2. Feed composition or pagination, which live in the feed package
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned on lookups for entities that do not exist, including
// lookups scoped to the wrong owner. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed user input. It carries the offending field
// so handlers can re-render the form with the error attached to it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidationError returns the wrapped *ValidationError, or nil if err is not
// one.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsNotFound returns true iff err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
