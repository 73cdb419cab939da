package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle     = errors.New("task title cannot be empty")
	ErrEmptyTaskStatus    = errors.New("task status cannot be empty")
	ErrEmptyTaskPriority  = errors.New("task priority cannot be empty")
	ErrEmptyTaskCreatedBy = errors.New("task creator cannot be empty")
)

// Conventional status and priority values. Both fields are open string
// enums: the API validates them as non-empty strings rather than against
// a closed set, so clients may introduce their own workflow states.
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"

	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// Task represents a unit of work owned by its creator and optionally
// assigned to another user. A task carries at most MaxDocumentsPerTask
// attached documents over its whole lifetime.
type Task struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	AssignedTo  *uuid.UUID  `json:"assigned_to,omitempty"`
	Documents   []*Document `json:"documents"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewTask creates a new Task owned by the given creator.
// It generates a new UUID for the task ID and sets the timestamps.
// Returns an error if validation fails.
func NewTask(title, description, status, priority string, dueDate *time.Time, createdBy uuid.UUID) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.Status == "" {
		return ErrEmptyTaskStatus
	}

	if t.Priority == "" {
		return ErrEmptyTaskPriority
	}

	if t.CreatedBy == uuid.Nil {
		return ErrEmptyTaskCreatedBy
	}

	return nil
}

// Assign sets the task's assignee. The creator is immutable; the assignee
// may be reassigned at any time.
func (t *Task) Assign(userID uuid.UUID) {
	t.AssignedTo = &userID
	t.UpdatedAt = time.Now().UTC()
}
