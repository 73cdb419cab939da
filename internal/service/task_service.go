package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskParams carries the fields of a task create request.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
}

// UpdateTaskParams carries the fields of a task update request.
// Title, Description, Status, Priority and DueDate always overwrite the
// stored values; AssigneeID only takes effect when non-nil.
type UpdateTaskParams struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
}

// TaskView is a task hydrated with the emails of its creator and assignee,
// ready for presentation.
type TaskView struct {
	Task            *domain.Task
	CreatedByEmail  string
	AssignedToEmail string
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Items      []*TaskView
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// DocumentContent is the payload of a document download.
type DocumentContent struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TaskService provides the task lifecycle operations, each guarded by the
// ownership check: non-admin callers only ever reach their own tasks.
type TaskService interface {
	// List returns the page of tasks visible to the caller that match the
	// given filters. Non-admin callers are always scoped to their own
	// tasks; returns store.ErrUserNotFound if the caller's email is not
	// in the user directory.
	List(ctx context.Context, params ListTasksParams, caller Identity) (*TaskPage, error)

	// Get returns a single task. Returns store.ErrTaskNotFound if absent,
	// ErrAccessDenied if the caller may not see it.
	Get(ctx context.Context, id uuid.UUID, caller Identity) (*TaskView, error)

	// Create persists a new task owned by the caller and attaches any
	// uploaded files. Returns store.ErrUserNotFound if the caller is
	// unknown, ErrAssigneeNotFound if an assignee ID does not resolve.
	Create(ctx context.Context, params CreateTaskParams, files []FileUpload, caller Identity) (*TaskView, error)

	// Update overwrites a task's fields and attaches any uploaded files,
	// validating the attachment limit against existing plus new documents.
	Update(ctx context.Context, id uuid.UUID, params UpdateTaskParams, files []FileUpload, caller Identity) (*TaskView, error)

	// Delete removes a task, its document records, and (best effort) the
	// blobs behind them.
	Delete(ctx context.Context, id uuid.UUID, caller Identity) error

	// DownloadDocument returns the bytes of a single attached document.
	DownloadDocument(ctx context.Context, documentID uuid.UUID, caller Identity) (*DocumentContent, error)

	// DeleteDocument removes a single attached document and its blob.
	DeleteDocument(ctx context.Context, documentID uuid.UUID, caller Identity) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	docStore  store.DocumentStore
	userStore store.UserStore
	documents *DocumentManager
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. If logger is nil, the default
// logger is used.
func NewTaskService(
	taskStore store.TaskStore,
	docStore store.DocumentStore,
	userStore store.UserStore,
	documents *DocumentManager,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if docStore == nil {
		return nil, domain.NewValidationError("docStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if documents == nil {
		return nil, domain.NewValidationError("documents", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		docStore:  docStore,
		userStore: userStore,
		documents: documents,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, params ListTasksParams, caller Identity) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only non-admin listings need the caller resolved: the mandatory
	// creator predicate scopes them to their own tasks.
	var creator *uuid.UUID
	if !caller.IsAdmin() {
		user, err := s.userStore.GetByEmail(ctx, caller.Email)
		if err != nil {
			log.Warn("failed to resolve caller for scoped listing",
				slog.String("error", err.Error()))
			return nil, err
		}
		creator = &user.ID
	}

	query := NewListQuery(params, creator)
	tasks, total, err := s.taskStore.List(ctx, query)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	emails := newEmailResolver(s.userStore)
	items := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		view, err := s.viewFor(ctx, task, emails)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}

	totalPages := int(total) / query.Size
	if int(total)%query.Size != 0 {
		totalPages++
	}

	log.Debug("listed tasks",
		slog.Int("count", len(items)),
		slog.Int64("total", total),
		slog.Bool("admin_scope", creator == nil))

	return &TaskPage{
		Items:      items,
		Page:       query.Page,
		Size:       query.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID, caller Identity) (*TaskView, error) {
	task, _, err := s.fetchAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	return s.viewFor(ctx, task, newEmailResolver(s.userStore))
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams, files []FileUpload, caller Identity) (*TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creator, err := s.userStore.GetByEmail(ctx, caller.Email)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(params.Title, params.Description, params.Status, params.Priority, params.DueDate, creator.ID)
	if err != nil {
		return nil, err
	}

	if params.AssigneeID != nil {
		assignee, err := s.resolveAssignee(ctx, *params.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.Assign(assignee.ID)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	// The task row is already committed at this point; a rejected upload
	// batch surfaces the error while leaving the bare task in place.
	if len(files) > 0 {
		attached, err := s.documents.Attach(ctx, task, files)
		task.Documents = append(task.Documents, attached...)
		if err != nil {
			return nil, err
		}
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("created_by", creator.ID.String()),
		slog.Int("documents", len(task.Documents)))

	return s.viewFor(ctx, task, newEmailResolver(s.userStore))
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(ctx context.Context, id uuid.UUID, params UpdateTaskParams, files []FileUpload, caller Identity) (*TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, _, err := s.fetchAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Status = params.Status
	task.Priority = params.Priority
	task.DueDate = params.DueDate
	task.UpdatedAt = time.Now().UTC()

	if params.AssigneeID != nil {
		assignee, err := s.resolveAssignee(ctx, *params.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.Assign(assignee.ID)
	}

	// Validate and store uploads before persisting the field overwrites:
	// a rejected batch leaves the stored task untouched.
	if len(files) > 0 {
		attached, err := s.documents.Attach(ctx, task, files)
		task.Documents = append(task.Documents, attached...)
		if err != nil {
			return nil, err
		}
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.Int("documents", len(task.Documents)))

	return s.viewFor(ctx, task, newEmailResolver(s.userStore))
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID, caller Identity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, _, err := s.fetchAuthorized(ctx, id, caller)
	if err != nil {
		return err
	}

	// Blob cleanup is best effort; the task row goes away regardless.
	s.documents.RemoveAllBlobs(ctx, task)

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted",
		slog.String("task_id", task.ID.String()),
		slog.Int("documents", len(task.Documents)))
	return nil
}

// DownloadDocument implements TaskService.DownloadDocument
func (s *taskServiceImpl) DownloadDocument(ctx context.Context, documentID uuid.UUID, caller Identity) (*DocumentContent, error) {
	doc, err := s.docStore.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.fetchAuthorized(ctx, doc.TaskID, caller); err != nil {
		return nil, err
	}

	data, err := s.documents.Retrieve(ctx, doc)
	if err != nil {
		return nil, NewTaskServiceError("download_document", "failed to load document content", err)
	}

	return &DocumentContent{
		FileName:    doc.FileName,
		ContentType: doc.FileType,
		Data:        data,
	}, nil
}

// DeleteDocument implements TaskService.DeleteDocument
func (s *taskServiceImpl) DeleteDocument(ctx context.Context, documentID uuid.UUID, caller Identity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc, err := s.docStore.GetByID(ctx, documentID)
	if err != nil {
		return err
	}

	if _, _, err := s.fetchAuthorized(ctx, doc.TaskID, caller); err != nil {
		return err
	}

	if err := s.documents.Remove(ctx, doc); err != nil {
		return err
	}

	log.Info("document deleted",
		slog.String("document_id", doc.ID.String()),
		slog.String("task_id", doc.TaskID.String()))
	return nil
}

// fetchAuthorized loads a task and applies the ownership guard against the
// caller. Returns the task and its owner.
func (s *taskServiceImpl) fetchAuthorized(ctx context.Context, id uuid.UUID, caller Identity) (*domain.Task, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.userStore.GetByID(ctx, task.CreatedBy)
	if err != nil {
		return nil, nil, NewTaskServiceError("authorize", "failed to resolve task owner", err)
	}

	if err := authorize(caller, owner.Email); err != nil {
		log.Warn("access denied",
			slog.String("task_id", task.ID.String()),
			slog.String("caller_role", string(caller.Role)))
		return nil, nil, err
	}

	return task, owner, nil
}

// resolveAssignee looks up an assignee by ID, translating a missing user
// into ErrAssigneeNotFound.
func (s *taskServiceImpl) resolveAssignee(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	assignee, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, err
	}
	return assignee, nil
}

// emailResolver memoizes user ID to email lookups while a listing page is
// being hydrated.
type emailResolver struct {
	users store.UserStore
	cache map[uuid.UUID]string
}

func newEmailResolver(users store.UserStore) *emailResolver {
	return &emailResolver{users: users, cache: make(map[uuid.UUID]string)}
}

func (r *emailResolver) email(ctx context.Context, id uuid.UUID) (string, error) {
	if email, ok := r.cache[id]; ok {
		return email, nil
	}
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	r.cache[id] = user.Email
	return user.Email, nil
}

// viewFor hydrates a task with its creator's and assignee's emails.
func (s *taskServiceImpl) viewFor(ctx context.Context, task *domain.Task, emails *emailResolver) (*TaskView, error) {
	view := &TaskView{Task: task}

	createdBy, err := emails.email(ctx, task.CreatedBy)
	if err != nil {
		return nil, NewTaskServiceError("hydrate", "failed to resolve creator email", err)
	}
	view.CreatedByEmail = createdBy

	if task.AssignedTo != nil {
		assignedTo, err := emails.email(ctx, *task.AssignedTo)
		if err != nil {
			return nil, NewTaskServiceError("hydrate", "failed to resolve assignee email", err)
		}
		view.AssignedToEmail = assignedTo
	}

	return view, nil
}
