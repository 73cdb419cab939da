// Package service provides application-level services for tasks, their
// attached documents, and user management.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps each to an HTTP
// status code.
var (
	// ErrAccessDenied indicates the caller is neither an admin nor the
	// owner of the record they are operating on.
	// API layer should map this to HTTP 403 Forbidden.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidDocumentType indicates an uploaded file is not a PDF.
	// The whole upload batch is rejected, not just the offending file.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidDocumentType = errors.New("only PDF documents are allowed")

	// ErrDocumentLimitExceeded indicates an upload would push a task past
	// its attachment limit. API layer should map this to HTTP 400.
	ErrDocumentLimitExceeded = errors.New("document limit exceeded")

	// ErrAssigneeNotFound indicates the requested assignee does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrAssigneeNotFound = errors.New("assignee not found")
)

// TaskServiceError is a custom error type for task service failures that
// are not covered by a sentinel.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return "task service " + e.Operation + " failed: " + e.Message + ": " + e.Err.Error()
	}
	return "task service " + e.Operation + " failed: " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{Operation: operation, Message: message, Err: err}
}
