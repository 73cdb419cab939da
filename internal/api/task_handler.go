package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// maxUploadBytes caps the in-memory size of a multipart task request.
const maxUploadBytes = 32 << 20 // 32 MiB

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks. Filters, sorting and paging come from
// query parameters; non-admin callers only ever see their own tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	params := service.ListTasksParams{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		DueDate:  q.Get("dueDate"),
		SortBy:   q.Get("sortBy"),
		SortDir:  q.Get("sortDir"),
		Page:     parseIntParam(q.Get("page"), 0),
		Size:     parseIntParam(q.Get("size"), 10),
	}

	page, err := h.taskService.List(r.Context(), params, identity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskPageResponse(page))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := getIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.taskService.Get(r.Context(), id, identity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(view))
}

// CreateTask handles POST /api/tasks. The body is either plain JSON or a
// multipart form with a "task" JSON part and up to three "files" parts.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	req, files, err := h.parseTaskRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	params := service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssignedTo,
	}

	view, err := h.taskService.Create(r.Context(), params, files, identity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(view))
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := getIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	req, files, err := h.parseTaskRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssignedTo,
	}

	view, err := h.taskService.Update(r.Context(), id, params, files, identity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(view))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := getIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id, identity); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadDocument handles GET /api/tasks/documents/{documentID}, streaming
// the stored bytes back with the original file name and content type.
func (h *TaskHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	identity, docID, ok := getIdentityAndPathUUID(w, r, "documentID")
	if !ok {
		return
	}

	content, err := h.taskService.DownloadDocument(r.Context(), docID, identity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content.Data); err != nil {
		h.logger.Error("failed to write document response", "error", err)
	}
}

// DeleteDocument handles DELETE /api/tasks/documents/{documentID}.
func (h *TaskHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	identity, docID, ok := getIdentityAndPathUUID(w, r, "documentID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteDocument(r.Context(), docID, identity); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTaskRequest decodes a task create/update request from either a JSON
// body or a multipart form carrying a "task" JSON part plus "files" parts.
func (h *TaskHandler) parseTaskRequest(r *http.Request) (TaskRequest, []service.FileUpload, error) {
	var req TaskRequest

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/") {
		if err := shared.DecodeJSON(r, &req); err != nil {
			return req, nil, fmt.Errorf("invalid request format")
		}
		if err := shared.ValidateRequest(req); err != nil {
			return req, nil, fmt.Errorf("validation error: %s", err.Error())
		}
		return req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, nil, fmt.Errorf("invalid multipart form")
	}

	taskPart := r.FormValue("task")
	if taskPart == "" {
		return req, nil, fmt.Errorf("missing task part")
	}
	if err := json.Unmarshal([]byte(taskPart), &req); err != nil {
		return req, nil, fmt.Errorf("invalid task part")
	}
	if err := shared.ValidateRequest(req); err != nil {
		return req, nil, fmt.Errorf("validation error: %s", err.Error())
	}

	var files []service.FileUpload
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			return req, nil, fmt.Errorf("failed to read uploaded file %q", header.Filename)
		}
		data, err := io.ReadAll(file)
		closeErr := file.Close()
		if err != nil || closeErr != nil {
			return req, nil, fmt.Errorf("failed to read uploaded file %q", header.Filename)
		}

		files = append(files, service.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        data,
		})
	}

	return req, files, nil
}

// parseIntParam parses a non-negative integer query parameter, falling back
// to the default on absence or garbage.
func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
