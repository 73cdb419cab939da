package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// In-memory store fakes backing the service tests. The task fake evaluates
// queries with TaskQuery.Matches, so the tests exercise the same predicate
// semantics the SQL store compiles to.

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) add(user *domain.User) *domain.User {
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, query store.UserQuery) ([]*domain.User, int64, error) {
	var users []*domain.User
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, int64(len(users)), nil
}

type fakeTaskStore struct {
	tasks map[uuid.UUID]*domain.Task
	docs  *fakeDocumentStore
}

func newFakeTaskStore(docs *fakeDocumentStore) *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task), docs: docs}
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	copied.Documents = s.docs.forTask(id)
	return &copied, nil
}

func (s *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	s.docs.deleteForTask(id)
	return nil
}

func (s *fakeTaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, task := range s.tasks {
		if query.Matches(task) {
			copied := *task
			copied.Documents = s.docs.forTask(task.ID)
			matched = append(matched, &copied)
		}
	}

	asc := query.SortDir == store.SortAscending
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].ID.String() < matched[j].ID.String()
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := query.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + query.Size
	if query.Size <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type fakeDocumentStore struct {
	docs      map[uuid.UUID]*domain.Document
	createErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[uuid.UUID]*domain.Document)}
}

func (s *fakeDocumentStore) forTask(taskID uuid.UUID) []*domain.Document {
	var out []*domain.Document
	for _, doc := range s.docs {
		if doc.TaskID == taskID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *fakeDocumentStore) deleteForTask(taskID uuid.UUID) {
	for id, doc := range s.docs {
		if doc.TaskID == taskID {
			delete(s.docs, id)
		}
	}
}

func (s *fakeDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.docs[doc.ID] = doc
	return nil
}

func (s *fakeDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *fakeDocumentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Document, error) {
	return s.forTask(taskID), nil
}

func (s *fakeDocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.docs[id]; !ok {
		return store.ErrDocumentNotFound
	}
	delete(s.docs, id)
	return nil
}

type fakeBlobStore struct {
	blobs     map[string][]byte
	putErr    error
	deleteErr error
	putCount  int
	deleted   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.putCount++
	key := fmt.Sprintf("%s_%s", uuid.NewString(), suggestedName)
	s.blobs[key] = data
	return key, nil
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return data, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, key)
	return nil
}

// Interface checks keep the fakes honest.
var (
	_ store.UserStore     = (*fakeUserStore)(nil)
	_ store.TaskStore     = (*fakeTaskStore)(nil)
	_ store.DocumentStore = (*fakeDocumentStore)(nil)
	_ BlobStore           = (*fakeBlobStore)(nil)
)
