package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrZeroColumns     = fmt.Errorf("%w: table has no columns", ErrInvalidInput)
	ErrLengthMismatch  = fmt.Errorf("%w: column lengths differ", ErrInvalidInput)
	ErrDuplicateColumn = fmt.Errorf("%w: duplicate column name", ErrInvalidInput)
	ErrEmptyColumnName = fmt.Errorf("%w: empty column name", ErrInvalidInput)
	ErrUnknownColumn   = errors.New("unknown column")
	ErrTypeMismatch    = errors.New("cell type mismatch")

	// Capability errors
	ErrMissingCapability = errors.New("missing capability")

	// Rendering errors
	ErrRenderFailed = errors.New("render failed")
)

// Error constructors with context
func NewUnknownColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func NewTypeMismatchError(column string, want, got string) error {
	return fmt.Errorf("%w in column %q: want %s, got %s", ErrTypeMismatch, column, want, got)
}

func NewMissingCapabilityError(capability string) error {
	return fmt.Errorf("%w: %s", ErrMissingCapability, capability)
}

func NewRenderError(backend string, err error) error {
	return fmt.Errorf("%w: %s backend: %v", ErrRenderFailed, backend, err)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrTypeMismatch)
}

func IsMissingCapability(err error) bool {
	return errors.Is(err, ErrMissingCapability)
}

func IsRenderError(err error) bool {
	return errors.Is(err, ErrRenderFailed)
}
