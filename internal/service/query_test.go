package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestNewListQueryCreatorScope(t *testing.T) {
	creator := uuid.New()

	t.Run("creator predicate is injected for scoped callers", func(t *testing.T) {
		query := NewListQuery(ListTasksParams{}, &creator)
		require.Len(t, query.Filters, 1)
		assert.Equal(t, store.TaskFieldCreatedBy, query.Filters[0].Field)
		assert.Equal(t, creator.String(), query.Filters[0].Value)
	})

	t.Run("nil creator adds no scope", func(t *testing.T) {
		query := NewListQuery(ListTasksParams{}, nil)
		assert.Empty(t, query.Filters)
	})

	t.Run("filter params cannot displace the creator predicate", func(t *testing.T) {
		query := NewListQuery(ListTasksParams{Status: "DONE", Priority: "HIGH", DueDate: "2026-02-01"}, &creator)
		require.Len(t, query.Filters, 4)
		assert.Equal(t, store.TaskFieldCreatedBy, query.Filters[0].Field)
	})
}

func TestNewListQueryOptionalFilters(t *testing.T) {
	query := NewListQuery(ListTasksParams{Status: "TODO"}, nil)
	require.Len(t, query.Filters, 1)
	assert.Equal(t, store.TaskFilter{Field: store.TaskFieldStatus, Value: "TODO"}, query.Filters[0])

	query = NewListQuery(ListTasksParams{Priority: "LOW", DueDate: "2026-05-01"}, nil)
	require.Len(t, query.Filters, 2)
	assert.Equal(t, store.TaskFieldPriority, query.Filters[0].Field)
	assert.Equal(t, store.TaskFieldDueDate, query.Filters[1].Field)
}

func TestNewListQueryDefaults(t *testing.T) {
	query := NewListQuery(ListTasksParams{}, nil)
	assert.Equal(t, "id", query.SortBy)
	assert.Equal(t, store.SortDescending, query.SortDir)
	assert.Equal(t, 0, query.Page)
	assert.Equal(t, 10, query.Size)

	query = NewListQuery(ListTasksParams{Page: -3, Size: -1}, nil)
	assert.Equal(t, 0, query.Page)
	assert.Equal(t, 10, query.Size)
}

func TestNewListQuerySortDirection(t *testing.T) {
	assert.Equal(t, store.SortAscending, NewListQuery(ListTasksParams{SortDir: "asc"}, nil).SortDir)
	assert.Equal(t, store.SortAscending, NewListQuery(ListTasksParams{SortDir: "ASC"}, nil).SortDir)
	assert.Equal(t, store.SortDescending, NewListQuery(ListTasksParams{SortDir: "desc"}, nil).SortDir)
	assert.Equal(t, store.SortDescending, NewListQuery(ListTasksParams{SortDir: "ascending"}, nil).SortDir)
	assert.Equal(t, store.SortDescending, NewListQuery(ListTasksParams{}, nil).SortDir)
}
