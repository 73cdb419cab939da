// Package blob provides byte storage for document content, keyed by opaque
// string identifiers. The storage key is persisted on the document record
// and never exposed to API callers.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// ErrBlobNotFound is returned by Get when no blob exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// FilesystemStore stores blobs as files under a single directory.
// Keys are of the form "<uuid>_<sanitized original name>" so collisions
// between uploads sharing a file name are impossible.
type FilesystemStore struct {
	dir    string
	logger *slog.Logger
}

// NewFilesystemStore creates a blob store rooted at dir, creating the
// directory if needed. If logger is nil, the default logger is used.
func NewFilesystemStore(dir string, logger *slog.Logger) (*FilesystemStore, error) {
	if dir == "" {
		return nil, errors.New("blob store directory cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob store directory: %w", err)
	}

	return &FilesystemStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "blob_store")),
	}, nil
}

// Put stores the given bytes and returns the generated storage key.
// The suggested name only influences the key for operator legibility;
// uniqueness comes from the UUID prefix.
func (s *FilesystemStore) Put(ctx context.Context, data []byte, suggestedName string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key := uuid.New().String() + "_" + sanitizeName(suggestedName)
	path := filepath.Join(s.dir, key)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("failed to write blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	log.Debug("blob stored",
		slog.String("key", key),
		slog.Int("size", len(data)))
	return key, nil
}

// Get returns the bytes stored under the key.
// Returns ErrBlobNotFound if no blob exists under the key.
func (s *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("blob not found", slog.String("key", key))
			return nil, ErrBlobNotFound
		}
		log.Error("failed to read blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	return data, nil
}

// Delete removes the blob stored under the key. Deleting an absent blob is
// not an error.
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to delete blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	log.Debug("blob deleted", slog.String("key", key))
	return nil
}

// sanitizeName strips path separators and control characters from an
// uploaded file name before it becomes part of a storage key.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
