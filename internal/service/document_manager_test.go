package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func pdfUpload(name string) FileUpload {
	return FileUpload{
		Name:        name,
		ContentType: domain.PDFContentType,
		Size:        4,
		Data:        []byte("%PDF"),
	}
}

func newTestTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("t", "", domain.TaskStatusTodo, domain.TaskPriorityLow, nil, uuid.New())
	require.NoError(t, err)
	return task
}

func TestValidateUploads(t *testing.T) {
	m := NewDocumentManager(newFakeDocumentStore(), newFakeBlobStore(), nil)

	t.Run("empty batch always passes", func(t *testing.T) {
		assert.NoError(t, m.ValidateUploads(0, nil))
		assert.NoError(t, m.ValidateUploads(domain.MaxDocumentsPerTask, nil))
	})

	t.Run("batch within limit passes", func(t *testing.T) {
		assert.NoError(t, m.ValidateUploads(0, []FileUpload{pdfUpload("a.pdf"), pdfUpload("b.pdf"), pdfUpload("c.pdf")}))
		assert.NoError(t, m.ValidateUploads(2, []FileUpload{pdfUpload("a.pdf")}))
	})

	t.Run("limit is cumulative with existing documents", func(t *testing.T) {
		err := m.ValidateUploads(2, []FileUpload{pdfUpload("a.pdf"), pdfUpload("b.pdf")})
		assert.ErrorIs(t, err, ErrDocumentLimitExceeded)

		err = m.ValidateUploads(3, []FileUpload{pdfUpload("a.pdf")})
		assert.ErrorIs(t, err, ErrDocumentLimitExceeded)
	})

	t.Run("non-PDF content type rejects the batch", func(t *testing.T) {
		bad := pdfUpload("notes.txt")
		bad.ContentType = "text/plain"
		err := m.ValidateUploads(0, []FileUpload{pdfUpload("a.pdf"), bad})
		assert.ErrorIs(t, err, ErrInvalidDocumentType)
	})

	t.Run("limit check runs before type check", func(t *testing.T) {
		bad := pdfUpload("notes.txt")
		bad.ContentType = "text/plain"
		err := m.ValidateUploads(3, []FileUpload{bad})
		assert.ErrorIs(t, err, ErrDocumentLimitExceeded)
	})
}

func TestAttachValidatesBeforePersistingAnything(t *testing.T) {
	docStore := newFakeDocumentStore()
	blobs := newFakeBlobStore()
	m := NewDocumentManager(docStore, blobs, nil)
	task := newTestTask(t)

	bad := pdfUpload("evil.exe")
	bad.ContentType = "application/octet-stream"

	// The bad file sits last; the two good files ahead of it must not be
	// stored since validation covers the whole batch up front.
	attached, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("a.pdf"), pdfUpload("b.pdf"), bad})
	assert.ErrorIs(t, err, ErrInvalidDocumentType)
	assert.Empty(t, attached)
	assert.Zero(t, blobs.putCount, "no blob may be written for a rejected batch")
	assert.Empty(t, docStore.docs, "no record may be written for a rejected batch")
}

func TestAttachStoresBlobThenRecord(t *testing.T) {
	docStore := newFakeDocumentStore()
	blobs := newFakeBlobStore()
	m := NewDocumentManager(docStore, blobs, nil)
	task := newTestTask(t)

	attached, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("a.pdf"), pdfUpload("b.pdf")})
	require.NoError(t, err)
	require.Len(t, attached, 2)

	for _, doc := range attached {
		assert.Equal(t, task.ID, doc.TaskID)
		assert.Equal(t, domain.PDFContentType, doc.FileType)
		assert.NotEmpty(t, doc.StorageKey)

		data, err := blobs.Get(context.Background(), doc.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF"), data)

		_, ok := docStore.docs[doc.ID]
		assert.True(t, ok, "record must be persisted")
	}
}

func TestAttachMidBatchFailureKeepsEarlierFiles(t *testing.T) {
	docStore := newFakeDocumentStore()
	blobs := newFakeBlobStore()
	m := NewDocumentManager(docStore, blobs, nil)
	task := newTestTask(t)

	// First file succeeds, then the record store starts failing. There is
	// no cross-file rollback: the first document stays attached.
	attached, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("a.pdf")})
	require.NoError(t, err)
	require.Len(t, attached, 1)
	task.Documents = attached

	docStore.createErr = errors.New("record store down")
	more, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("b.pdf")})
	require.Error(t, err)
	assert.Empty(t, more)

	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "attach_documents", svcErr.Operation)

	// The earlier document is untouched by the later failure.
	_, ok := docStore.docs[attached[0].ID]
	assert.True(t, ok)
}

func TestRemoveDeletesBlobBeforeRecord(t *testing.T) {
	docStore := newFakeDocumentStore()
	blobs := newFakeBlobStore()
	m := NewDocumentManager(docStore, blobs, nil)
	task := newTestTask(t)

	attached, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("a.pdf")})
	require.NoError(t, err)
	doc := attached[0]

	require.NoError(t, m.Remove(context.Background(), doc))
	assert.NotContains(t, blobs.blobs, doc.StorageKey)
	assert.NotContains(t, docStore.docs, doc.ID)

	// A failing blob delete aborts before the record is touched.
	attached, err = m.Attach(context.Background(), task, []FileUpload{pdfUpload("b.pdf")})
	require.NoError(t, err)
	doc = attached[0]

	blobs.deleteErr = errors.New("blob store down")
	require.Error(t, m.Remove(context.Background(), doc))
	assert.Contains(t, docStore.docs, doc.ID, "record must survive a failed blob delete")
}

func TestRemoveAllBlobsSwallowsFailures(t *testing.T) {
	docStore := newFakeDocumentStore()
	blobs := newFakeBlobStore()
	m := NewDocumentManager(docStore, blobs, nil)
	task := newTestTask(t)

	attached, err := m.Attach(context.Background(), task, []FileUpload{pdfUpload("a.pdf"), pdfUpload("b.pdf")})
	require.NoError(t, err)
	task.Documents = attached

	blobs.deleteErr = errors.New("blob store down")

	// Never panics, never returns an error, and still attempts every blob.
	m.RemoveAllBlobs(context.Background(), task)
	assert.Len(t, blobs.deleted, 2)
}
