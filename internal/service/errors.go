package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the capsule (or related record) does not exist. Checked
	// before ownership, uniformly across operations.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the requester lacks ownership of a private or mutable
	// resource. No partial effect has occurred.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError names the offending field. Raised before any scheduling or
// persistence happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
