package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// DocumentStore implements the store.DocumentStore interface using a
// PostgreSQL database as the storage backend.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDocumentStore creates a new PostgreSQL implementation of the
// DocumentStore interface. If logger is nil, the default logger is used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// Create implements store.DocumentStore.Create
func (s *DocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during create",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	query := `
		INSERT INTO documents (id, task_id, file_name, file_type, file_size, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.TaskID,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.StorageKey,
		doc.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during document creation",
				slog.String("document_id", doc.ID.String()),
				slog.String("task_id", doc.TaskID.String()))
			return fmt.Errorf("%w: task with ID %s not found",
				store.ErrInvalidEntity, doc.TaskID)
		}
		log.Error("failed to create document",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	log.Info("document created successfully",
		slog.String("document_id", doc.ID.String()),
		slog.String("task_id", doc.TaskID.String()))
	return nil
}

// GetByID implements store.DocumentStore.GetByID
func (s *DocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, file_name, file_type, file_size, storage_key, created_at
		FROM documents
		WHERE id = $1
	`
	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found", slog.String("document_id", id.String()))
			return nil, store.ErrDocumentNotFound
		}
		log.Error("failed to get document by ID",
			slog.String("error", err.Error()),
			slog.String("document_id", id.String()))
		return nil, err
	}

	return doc, nil
}

// ListByTask implements store.DocumentStore.ListByTask
func (s *DocumentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, file_name, file_type, file_size, storage_key, created_at
		FROM documents
		WHERE task_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to list documents",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete implements store.DocumentStore.Delete
func (s *DocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("error", err.Error()),
			slog.String("document_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrDocumentNotFound
	}

	log.Info("document deleted successfully", slog.String("document_id", id.String()))
	return nil
}

// scanDocument reads one document row into a domain.Document.
func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document

	err := row.Scan(
		&doc.ID,
		&doc.TaskID,
		&doc.FileName,
		&doc.FileType,
		&doc.FileSize,
		&doc.StorageKey,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
