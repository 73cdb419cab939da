package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// taskSortColumns whitelists the columns a task listing may sort by.
// Unknown names fall back to id so caller input never reaches the SQL text.
var taskSortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"due_date":   "due_date",
	"dueDate":    "due_date",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

// buildTaskListWhere compiles the query's filters into a WHERE clause and
// its positional arguments. An empty filter set yields an empty clause.
func buildTaskListWhere(query store.TaskQuery) (string, []any) {
	if len(query.Filters) == 0 {
		return "", nil
	}

	conditions := make([]string, 0, len(query.Filters))
	args := make([]any, 0, len(query.Filters))
	for _, f := range query.Filters {
		args = append(args, f.Value)
		if f.Field == store.TaskFieldDueDate {
			// The filter value is a calendar date; the column carries a
			// timestamp. Compare by day so any time within the date matches,
			// mirroring TaskFilter.Matches.
			conditions = append(conditions, fmt.Sprintf("%s::date = $%d", f.Field, len(args)))
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", f.Field, len(args)))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date,
			created_by, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullableTime(task.DueDate),
		task.CreatedBy,
		nullableUUID(task.AssignedTo),
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("created_by", task.CreatedBy.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, priority, due_date,
			created_by, assigned_to, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	if err := s.loadDocuments(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
			due_date = $5, assigned_to = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullableTime(task.DueDate),
		nullableUUID(task.AssignedTo),
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Document records owned by the task are removed by the ON DELETE CASCADE
// constraint on documents.task_id.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskListWhere(query)

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}

	column, ok := taskSortColumns[query.SortBy]
	if !ok {
		column = "id"
	}

	listSQL := fmt.Sprintf(`
		SELECT id, title, description, status, priority, due_date,
			created_by, assigned_to, created_at, updated_at
		FROM tasks%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, column, query.SortDir, len(args)+1, len(args)+2)
	args = append(args, query.Size, query.Offset())

	rows, err := s.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.loadDocuments(ctx, tasks); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// loadDocuments hydrates the Documents field of each task in one query.
func (s *TaskStore) loadDocuments(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	placeholders := make([]string, 0, len(tasks))
	args := make([]any, 0, len(tasks))
	for i, task := range tasks {
		task.Documents = []*domain.Document{}
		byID[task.ID] = task
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, task.ID)
	}

	query := fmt.Sprintf(`
		SELECT id, task_id, file_name, file_type, file_size, storage_key, created_at
		FROM documents
		WHERE task_id IN (%s)
		ORDER BY created_at
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return err
		}
		if task, ok := byID[doc.TaskID]; ok {
			task.Documents = append(task.Documents, doc)
		}
	}
	return rows.Err()
}

// scanTask reads one task row into a domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate sql.NullTime
	var assignedTo uuid.NullUUID

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&task.CreatedBy,
		&assignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	if assignedTo.Valid {
		assignee := assignedTo.UUID
		task.AssignedTo = &assignee
	}

	return &task, nil
}

// nullableTime maps an optional time to its database representation.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// nullableUUID maps an optional UUID to its database representation.
func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
