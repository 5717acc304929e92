package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrInvalidGrade     = errors.New("invalid grade")
	ErrInvalidCardState = errors.New("invalid card state")
	ErrPersistence      = errors.New("persistence failure")
	ErrImportFormat     = errors.New("invalid import format")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// CardStateError reports a CardState that violates the scheduling invariants,
// usually because persisted data was corrupted or edited by hand.
type CardStateError struct {
	CardID string
	Field  string
	Reason string
}

func (e *CardStateError) Error() string {
	if e.CardID == "" {
		return fmt.Sprintf("invalid card state: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid card state %q: %s: %s", e.CardID, e.Field, e.Reason)
}

func (e *CardStateError) Unwrap() error { return ErrInvalidCardState }

// PersistenceError wraps a storage read or write failure.
// Op is "load" or "save"; Record is the name of the persisted record.
type PersistenceError struct {
	Op     string
	Record string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Record, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// NewPersistenceError wraps err for the given operation and record.
func NewPersistenceError(op, record string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Record: record, Err: err}
}

// ImportFormatError reports a backup document that cannot be imported.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import: %s: %v", e.Reason, e.Err)
	}
	return "import: " + e.Reason
}

func (e *ImportFormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrImportFormat, e.Err}
	}
	return []error{ErrImportFormat}
}
