package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// BlobStore is the byte-storage backend for document content.
type BlobStore interface {
	// Put stores the given bytes and returns an opaque storage key.
	Put(ctx context.Context, data []byte, suggestedName string) (string, error)

	// Get returns the bytes stored under the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob under the key. Idempotent on absent blobs.
	Delete(ctx context.Context, key string) error
}

// FileUpload is one file payload submitted with a task create or update.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// DocumentManager owns the attached-document lifecycle: upload validation,
// the blob-then-record storage protocol, retrieval, and best-effort
// deletion.
type DocumentManager struct {
	docStore store.DocumentStore
	blobs    BlobStore
	logger   *slog.Logger
}

// NewDocumentManager creates a DocumentManager. If logger is nil, the
// default logger is used.
func NewDocumentManager(docStore store.DocumentStore, blobs BlobStore, logger *slog.Logger) *DocumentManager {
	if docStore == nil {
		panic("docStore cannot be nil")
	}
	if blobs == nil {
		panic("blobs cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentManager{
		docStore: docStore,
		blobs:    blobs,
		logger:   logger.With(slog.String("component", "document_manager")),
	}
}

// ValidateUploads applies the attachment rules to a batch of files against
// a task that already holds existingCount documents. Every file is checked
// before anything is persisted: one bad file rejects the whole batch.
func (m *DocumentManager) ValidateUploads(existingCount int, files []FileUpload) error {
	if len(files) == 0 {
		return nil
	}

	if existingCount+len(files) > domain.MaxDocumentsPerTask {
		return fmt.Errorf("%w: task has %d documents, %d more requested, maximum is %d",
			ErrDocumentLimitExceeded, existingCount, len(files), domain.MaxDocumentsPerTask)
	}

	for _, f := range files {
		if f.ContentType != domain.PDFContentType {
			return fmt.Errorf("%w: %q has content type %q",
				ErrInvalidDocumentType, f.Name, f.ContentType)
		}
	}

	return nil
}

// Attach validates the batch against the task's current document count and
// then stores each file: bytes into the blob store first, then the document
// record referencing the returned key. Files are stored independently; a
// failure on file N does not roll back files 1..N-1, since the blob store
// boundary offers no transaction to join.
func (m *DocumentManager) Attach(ctx context.Context, task *domain.Task, files []FileUpload) ([]*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if err := m.ValidateUploads(len(task.Documents), files); err != nil {
		log.Warn("upload validation failed",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.Int("existing", len(task.Documents)),
			slog.Int("requested", len(files)))
		return nil, err
	}

	var attached []*domain.Document
	for _, f := range files {
		key, err := m.blobs.Put(ctx, f.Data, f.Name)
		if err != nil {
			return attached, NewTaskServiceError("attach_documents", "failed to store file "+f.Name, err)
		}

		doc, err := domain.NewDocument(task.ID, f.Name, f.ContentType, f.Size, key)
		if err != nil {
			return attached, NewTaskServiceError("attach_documents", "invalid document record", err)
		}

		if err := m.docStore.Create(ctx, doc); err != nil {
			return attached, NewTaskServiceError("attach_documents", "failed to save document record", err)
		}

		attached = append(attached, doc)
		log.Info("document attached",
			slog.String("task_id", task.ID.String()),
			slog.String("document_id", doc.ID.String()),
			slog.Int64("size", doc.FileSize))
	}

	return attached, nil
}

// Retrieve returns the raw bytes of the given document.
func (m *DocumentManager) Retrieve(ctx context.Context, doc *domain.Document) ([]byte, error) {
	return m.blobs.Get(ctx, doc.StorageKey)
}

// Remove deletes one document: blob first (an absent blob is fine), then
// the record. A blob deletion failure aborts before the record is touched,
// so the record never dangles without its bytes being reclaimed first.
func (m *DocumentManager) Remove(ctx context.Context, doc *domain.Document) error {
	if err := m.blobs.Delete(ctx, doc.StorageKey); err != nil {
		return NewTaskServiceError("delete_document", "failed to delete blob", err)
	}
	return m.docStore.Delete(ctx, doc.ID)
}

// RemoveAllBlobs deletes the blobs behind every document of a task during
// cascade delete. Failures are collected and logged, never surfaced: the
// task row must go away even if a blob lingers. The leaked blob is the
// accepted cost of keeping deletes available when the blob store is down.
func (m *DocumentManager) RemoveAllBlobs(ctx context.Context, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	for _, doc := range task.Documents {
		if err := m.blobs.Delete(ctx, doc.StorageKey); err != nil {
			log.Warn("failed to delete blob during task delete, leaving it behind",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("document_id", doc.ID.String()))
		}
	}
}
