package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attachment constraints. The content type must match PDFContentType
// exactly and a task never holds more than MaxDocumentsPerTask documents,
// cumulatively across create and update calls.
const (
	PDFContentType      = "application/pdf"
	MaxDocumentsPerTask = 3
)

// Common validation errors for Document
var (
	ErrEmptyDocumentID         = errors.New("document ID cannot be empty")
	ErrEmptyDocumentTaskID     = errors.New("document task ID cannot be empty")
	ErrEmptyDocumentFileName   = errors.New("document file name cannot be empty")
	ErrEmptyDocumentStorageKey = errors.New("document storage key cannot be empty")
	ErrInvalidDocumentType     = errors.New("document content type must be " + PDFContentType)
)

// Document is a PDF attachment bound to exactly one Task. The record keeps
// the original file name and size for display; the bytes themselves live in
// the blob store under StorageKey, which is never exposed to callers.
type Document struct {
	ID         uuid.UUID `json:"id"`
	TaskID     uuid.UUID `json:"task_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDocument creates a new Document record for the given task.
// Returns an error if validation fails.
func NewDocument(taskID uuid.UUID, fileName, fileType string, fileSize int64, storageKey string) (*Document, error) {
	doc := &Document{
		ID:         uuid.New(),
		TaskID:     taskID,
		FileName:   fileName,
		FileType:   fileType,
		FileSize:   fileSize,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks if the Document has valid data.
// Returns an error if any field fails validation.
func (d *Document) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDocumentID
	}

	if d.TaskID == uuid.Nil {
		return ErrEmptyDocumentTaskID
	}

	if d.FileName == "" {
		return ErrEmptyDocumentFileName
	}

	if d.FileType != PDFContentType {
		return ErrInvalidDocumentType
	}

	if d.StorageKey == "" {
		return ErrEmptyDocumentStorageKey
	}

	return nil
}
