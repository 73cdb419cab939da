package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"access denied is 403", service.ErrAccessDenied, http.StatusForbidden},
		{"task not found is 404", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found is 404", store.ErrUserNotFound, http.StatusNotFound},
		{"document not found is 404", store.ErrDocumentNotFound, http.StatusNotFound},
		{"assignee not found is 404", service.ErrAssigneeNotFound, http.StatusNotFound},
		{"invalid document type is 400", service.ErrInvalidDocumentType, http.StatusBadRequest},
		{"document limit is 400", service.ErrDocumentLimitExceeded, http.StatusBadRequest},
		{"invalid entity is 400", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid role is 400", domain.ErrInvalidRole, http.StatusBadRequest},
		{"short password is 400", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"empty title is 400", domain.ErrEmptyTaskTitle, http.StatusBadRequest},
		{"email exists is 409", store.ErrEmailExists, http.StatusConflict},
		{"expired token is 401", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token is 401", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"wrong token type is 401", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unknown error is 500", errors.New("pipes burst"), http.StatusInternalServerError},
		{"nil error is 500", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeSeesThroughWrapping(t *testing.T) {
	wrapped := service.NewTaskServiceError("delete_task", "failed", store.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))

	doubly := fmt.Errorf("outer: %w", wrapped)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(doubly))

	deniedWrapped := fmt.Errorf("context: %w", service.ErrAccessDenied)
	assert.Equal(t, http.StatusForbidden, MapErrorToStatusCode(deniedWrapped))
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	internal := errors.New("postgres://admin:hunter2@db/x: connection refused")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)

	wrapped := service.NewTaskServiceError("list_tasks", "failed to list tasks", internal)
	msg = GetSafeErrorMessage(wrapped)
	assert.NotContains(t, msg, "hunter2")
	assert.NotContains(t, msg, "postgres://")
}

func TestGetSafeErrorMessageKnownErrors(t *testing.T) {
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "You do not have access to this task", GetSafeErrorMessage(service.ErrAccessDenied))
	assert.Equal(t, "Only PDF documents are allowed", GetSafeErrorMessage(service.ErrInvalidDocumentType))
	assert.Equal(t, "A task can carry at most 3 documents", GetSafeErrorMessage(service.ErrDocumentLimitExceeded))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessageValidationErrors(t *testing.T) {
	err := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	msg := GetSafeErrorMessage(err)
	assert.Contains(t, msg, "title")

	// A wrapped sentinel surfaces only the sentinel's message, not the
	// wrapping context.
	wrapped := fmt.Errorf("update user 42: %w", domain.ErrInvalidRole)
	msg = GetSafeErrorMessage(wrapped)
	assert.Equal(t, domain.ErrInvalidRole.Error(), msg)
	assert.NotContains(t, msg, "42")
}
