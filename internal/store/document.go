package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// DocumentStore defines the interface for document record persistence.
// Document records only reference blob content by storage key; the bytes
// themselves live in the blob store.
type DocumentStore interface {
	// Create saves a new document record.
	// Returns ErrInvalidEntity if the referenced task does not exist.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document record by its unique ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// ListByTask returns all document records attached to the given task,
	// oldest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Document, error)

	// Delete removes a document record by its ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
