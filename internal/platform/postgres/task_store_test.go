package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestBuildTaskListWhere(t *testing.T) {
	t.Run("no filters yields empty clause", func(t *testing.T) {
		where, args := buildTaskListWhere(store.TaskQuery{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("single filter", func(t *testing.T) {
		where, args := buildTaskListWhere(store.TaskQuery{Filters: []store.TaskFilter{
			{Field: store.TaskFieldStatus, Value: "TODO"},
		}})
		assert.Equal(t, " WHERE status = $1", where)
		assert.Equal(t, []any{"TODO"}, args)
	})

	t.Run("filters combine with AND in order", func(t *testing.T) {
		creator := uuid.New()
		where, args := buildTaskListWhere(store.TaskQuery{Filters: []store.TaskFilter{
			{Field: store.TaskFieldCreatedBy, Value: creator.String()},
			{Field: store.TaskFieldStatus, Value: "DONE"},
			{Field: store.TaskFieldDueDate, Value: "2026-01-31"},
		}})
		assert.Equal(t, " WHERE created_by = $1 AND status = $2 AND due_date::date = $3", where)
		assert.Equal(t, []any{creator.String(), "DONE", "2026-01-31"}, args)
	})

	t.Run("due date compares by calendar day", func(t *testing.T) {
		// The column is a timestamp but the filter value is a date, so the
		// clause must cast before comparing. A plain equality would only
		// match rows due exactly at midnight.
		where, args := buildTaskListWhere(store.TaskQuery{Filters: []store.TaskFilter{
			{Field: store.TaskFieldDueDate, Value: "2025-01-10"},
		}})
		assert.Equal(t, " WHERE due_date::date = $1", where)
		assert.Equal(t, []any{"2025-01-10"}, args)
	})
}

func TestTaskSortColumnWhitelist(t *testing.T) {
	// Caller-facing aliases resolve to real columns
	assert.Equal(t, "due_date", taskSortColumns["dueDate"])
	assert.Equal(t, "due_date", taskSortColumns["due_date"])
	assert.Equal(t, "created_at", taskSortColumns["createdAt"])

	// Anything outside the whitelist is absent, so List falls back to id
	_, ok := taskSortColumns["id; DROP TABLE tasks"]
	assert.False(t, ok)
	_, ok = taskSortColumns["description"]
	assert.False(t, ok)
}
