// Package xerrors holds the sentinel errors shared by repositories, services
// and controllers. Compare with errors.Is.
package xerrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("user is not authorized to perform this action")
	ErrConflict     = errors.New("conflict")
)

// Approval
var (
	ErrAlreadyDecided  = fmt.Errorf("%w: request has already been decided", ErrConflict)
	ErrInvalidDecision = fmt.Errorf("%w: decision must be Approved or Rejected", ErrValidation)
)

// Menu
var (
	ErrMenuCycle = errors.New("menu parent references form a cycle")
)

// Auth
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user is not active")
	ErrInvalidSession     = errors.New("invalid session")
)

// Validation wraps msg so that errors.Is(err, ErrValidation) holds.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound wraps entity so that errors.Is(err, ErrNotFound) holds.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
