package service

import (
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// ListTasksParams are the caller-supplied listing parameters. Filter fields
// are equality filters that only apply when non-empty; DueDate uses the
// ISO date form (2006-01-02).
type ListTasksParams struct {
	Status   string
	Priority string
	DueDate  string
	Page     int
	Size     int
	SortBy   string
	SortDir  string
}

// NewListQuery builds the store query for a task listing. creator, when
// non-nil, scopes the listing to tasks created by that user; it is mandatory
// for non-admin callers and not overridable by the filter parameters. Each
// optional filter contributes an equality predicate only when present, so
// absent filters impose no restriction.
func NewListQuery(p ListTasksParams, creator *uuid.UUID) store.TaskQuery {
	var filters []store.TaskFilter

	if creator != nil {
		filters = append(filters, store.TaskFilter{
			Field: store.TaskFieldCreatedBy,
			Value: creator.String(),
		})
	}
	if p.Status != "" {
		filters = append(filters, store.TaskFilter{
			Field: store.TaskFieldStatus,
			Value: p.Status,
		})
	}
	if p.Priority != "" {
		filters = append(filters, store.TaskFilter{
			Field: store.TaskFieldPriority,
			Value: p.Priority,
		})
	}
	if p.DueDate != "" {
		filters = append(filters, store.TaskFilter{
			Field: store.TaskFieldDueDate,
			Value: p.DueDate,
		})
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	size := p.Size
	if size <= 0 {
		size = 10
	}
	page := p.Page
	if page < 0 {
		page = 0
	}

	return store.TaskQuery{
		Filters: filters,
		SortBy:  sortBy,
		SortDir: store.ParseSortDirection(p.SortDir),
		Page:    page,
		Size:    size,
	}
}
