package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrReadOnly = errors.New("address book is in read-only mode")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a contact, phone or email does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformed matches every *FormatError.
	ErrMalformed = errors.New("malformed address book")
	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failure")
)

// Field names reported by ValidationError.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldPattern = "pattern"
)

// ValidationError reports a value rejected at construction time.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case FieldName:
		return "name is required"
	case FieldPhone:
		return fmt.Sprintf("invalid phone number %q: expected 9 digits, e.g. 123456789", e.Value)
	case FieldEmail:
		return fmt.Sprintf("invalid email address %q", e.Value)
	default:
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FormatError means persisted data exists but cannot be decoded into an
// address book. It is never reported for a missing file.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed address book %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}

// StorageError wraps an I/O failure of the underlying store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NotFoundError reports a contact, phone or email that does not exist.
// Kind is "contact", FieldPhone or FieldEmail.
type NotFoundError struct {
	Kind  string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s %q", ErrNotFound, e.Kind, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind, value string) error {
	return &NotFoundError{Kind: kind, Value: value}
}
