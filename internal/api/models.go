package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the payload for refreshing an access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by the register, login and refresh endpoints.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
}

// TaskRequest is the JSON part of a multipart task create or update request.
// Status and priority are free-form labels; teams define their own
// workflows around the canonical values. AssignedTo is optional; on update,
// a missing value leaves the stored assignee untouched.
type TaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status" validate:"required"`
	Priority    string     `json:"priority" validate:"required"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
}

// DocumentResponse describes one attached document.
type DocumentResponse struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskResponse is the client view of a task.
type TaskResponse struct {
	ID              uuid.UUID          `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Status          string             `json:"status"`
	Priority        string             `json:"priority"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	CreatedByID     uuid.UUID          `json:"created_by_id"`
	CreatedByEmail  string             `json:"created_by_email"`
	AssignedToID    *uuid.UUID         `json:"assigned_to_id,omitempty"`
	AssignedToEmail string             `json:"assigned_to_email,omitempty"`
	Documents       []DocumentResponse `json:"documents"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TaskPageResponse is one page of a task listing.
type TaskPageResponse struct {
	Items      []TaskResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// CreateUserRequest is the payload for the admin user create endpoint.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// UpdateUserRequest is the payload for the admin user update endpoint.
// An empty password leaves the stored hash untouched.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// UserResponse is the client view of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPageResponse is one page of a user listing.
type UserPageResponse struct {
	Items      []UserResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// NewDocumentResponse converts a domain document to its client view.
func NewDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		FileSize:  doc.FileSize,
		CreatedAt: doc.CreatedAt,
	}
}

// NewTaskResponse converts a hydrated task view to its client view.
func NewTaskResponse(view *service.TaskView) TaskResponse {
	task := view.Task

	docs := make([]DocumentResponse, 0, len(task.Documents))
	for _, doc := range task.Documents {
		docs = append(docs, NewDocumentResponse(doc))
	}

	return TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CreatedByID:     task.CreatedBy,
		CreatedByEmail:  view.CreatedByEmail,
		AssignedToID:    task.AssignedTo,
		AssignedToEmail: view.AssignedToEmail,
		Documents:       docs,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// NewTaskPageResponse converts a service page to its client view.
func NewTaskPageResponse(page *service.TaskPage) TaskPageResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, view := range page.Items {
		items = append(items, NewTaskResponse(view))
	}
	return TaskPageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// NewUserResponse converts a domain user to its client view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserPageResponse converts a service page to its client view.
func NewUserPageResponse(page *service.UserPage) UserPageResponse {
	items := make([]UserResponse, 0, len(page.Items))
	for _, user := range page.Items {
		items = append(items, NewUserResponse(user))
	}
	return UserPageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
