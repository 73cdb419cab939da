package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskField names a filterable task attribute.
type TaskField string

// Filterable task fields.
const (
	TaskFieldStatus    TaskField = "status"
	TaskFieldPriority  TaskField = "priority"
	TaskFieldDueDate   TaskField = "due_date"
	TaskFieldCreatedBy TaskField = "created_by"
)

// SortDirection is the ordering applied to a task listing.
type SortDirection string

// Sort directions.
const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// ParseSortDirection maps a caller-supplied direction string to a
// SortDirection. Only a case-insensitive exact match of "asc" sorts
// ascending; every other value, including typos, sorts descending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(s, "asc") {
		return SortAscending
	}
	return SortDescending
}

// TaskFilter is an equality predicate over a single task field.
// Filters combine as a conjunction: a task matches a query only when it
// matches every filter.
type TaskFilter struct {
	Field TaskField
	Value string
}

// Matches evaluates the filter against a task in memory. The postgres
// store compiles filters to SQL instead; this evaluation backs the
// in-memory fakes used in tests.
func (f TaskFilter) Matches(t *domain.Task) bool {
	switch f.Field {
	case TaskFieldStatus:
		return t.Status == f.Value
	case TaskFieldPriority:
		return t.Priority == f.Value
	case TaskFieldDueDate:
		return t.DueDate != nil && t.DueDate.Format("2006-01-02") == f.Value
	case TaskFieldCreatedBy:
		return t.CreatedBy.String() == f.Value
	default:
		return false
	}
}

// TaskQuery describes a filtered, sorted, paginated task listing.
type TaskQuery struct {
	Filters []TaskFilter
	SortBy  string
	SortDir SortDirection
	Page    int // zero-based page index
	Size    int // page size, > 0
}

// Matches reports whether the task satisfies every filter in the query.
func (q TaskQuery) Matches(t *domain.Task) bool {
	for _, f := range q.Filters {
		if !f.Matches(t) {
			return false
		}
	}
	return true
}

// Offset is the row offset of the query's page window.
func (q TaskQuery) Offset() int {
	return q.Page * q.Size
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, hydrated with its
	// document records. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update overwrites an existing task's mutable fields.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. Document records
	// owned by the task are removed with it.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the page of tasks matching the query, hydrated with
	// their document records, along with the total count of matching rows.
	List(ctx context.Context, query TaskQuery) ([]*domain.Task, int64, error)
}
