package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents a validation error for a specific field,
// including rejected sort/order values and malformed request bodies.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about a not found entity. Message carries
// the client-facing text the HTTP layer emits with a 404.
type NotFoundError struct {
	Entity  string
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AlreadyExistsError provides details about a duplicate unique key.
type AlreadyExistsError struct {
	Entity string
	Key    string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.Key)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// ForeignKeyError indicates a write referenced a row that does not exist,
// for example an article posted under an unknown topic. The store surfaces
// it at write time; it is never pre-checked. It maps to a 400, not a 404.
type ForeignKeyError struct {
	Entity string
	Detail string
}

// Error implements the error interface.
func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("%s references a missing row: %s", e.Entity, e.Detail)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ForeignKeyError) Unwrap() error {
	return ErrInvalidInput
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, message string) *NotFoundError {
	return &NotFoundError{
		Entity:  entity,
		Message: message,
	}
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(entity, key string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Entity: entity,
		Key:    key,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewForeignKeyError creates a new ForeignKeyError.
func NewForeignKeyError(entity, detail string) *ForeignKeyError {
	return &ForeignKeyError{
		Entity: entity,
		Detail: detail,
	}
}
