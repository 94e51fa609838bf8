package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists is the duplicate-key outcome of a unique constraint violation.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrMissingID is returned when a mutation is attempted on an entity that was never persisted.
	ErrMissingID = errors.New("entity has no id")

	ErrDatabase = errors.New("database error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

// NewDuplicateKeyError reports which unique constraint rejected the write.
func NewDuplicateKeyError(constraint string) error {
	return &AppError{
		Code:    "DUPLICATE_KEY",
		Message: fmt.Sprintf("duplicate value violates unique constraint %q", constraint),
		Cause:   ErrAlreadyExists,
	}
}
