// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidRole is returned when a role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")
)

// IsValidationError reports whether err is one of the domain's validation
// sentinels. These errors carry client-safe messages only.
func IsValidationError(err error) bool {
	_, ok := ValidationSentinel(err)
	return ok
}

// ValidationSentinel returns the validation sentinel matched by err, if any.
// Callers use the sentinel's message rather than err's full chain so no
// wrapping context reaches clients.
func ValidationSentinel(err error) (error, bool) {
	validationErrs := []error{
		ErrValidation,
		ErrInvalidID,
		ErrInvalidEmail,
		ErrInvalidRole,
		ErrEmptyUserID,
		ErrEmptyEmail,
		ErrPasswordTooShort,
		ErrPasswordTooLong,
		ErrEmptyPassword,
		ErrEmptyTaskID,
		ErrEmptyTaskTitle,
		ErrEmptyTaskStatus,
		ErrEmptyTaskPriority,
		ErrEmptyTaskCreatedBy,
		ErrEmptyDocumentID,
		ErrEmptyDocumentTaskID,
		ErrEmptyDocumentFileName,
		ErrEmptyDocumentStorageKey,
		ErrInvalidDocumentType,
	}
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return e, true
		}
	}
	return nil, false
}

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
