package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateUserParams carries the fields of an admin user create request.
type CreateUserParams struct {
	Email    string
	Password string
	Role     string
}

// UpdateUserParams carries the fields of an admin user update request.
// Password only takes effect when non-empty.
type UpdateUserParams struct {
	Email    string
	Password string
	Role     string
}

// UserPage is one page of a user listing.
type UserPage struct {
	Items      []*domain.User
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// UserService provides the user management operations. Authorization is the
// transport layer's concern: every operation here assumes an admin caller.
type UserService interface {
	// Create registers a new user with a hashed password. Returns
	// store.ErrEmailExists if the email is taken.
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// Get returns a single user. Returns store.ErrUserNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update overwrites a user's email and role, and rehashes the password
	// when one is supplied.
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error)

	// Delete removes a user. Returns store.ErrUserNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of users sorted by the given column.
	List(ctx context.Context, query store.UserQuery) (*UserPage, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a new UserService. If logger is nil, the default
// logger is used.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Create implements UserService.Create
func (s *userServiceImpl) Create(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Email, params.Password, domain.Role(params.Role))
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = hashed

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// Get implements UserService.Get
func (s *userServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// Update implements UserService.Update
func (s *userServiceImpl) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = params.Email
	if !domain.IsValidRole(domain.Role(params.Role)) {
		return nil, domain.NewValidationError("role", "must be USER or ADMIN", domain.ErrValidation)
	}
	user.Role = domain.Role(params.Role)

	if params.Password != "" {
		user.Password = params.Password
	}
	user.UpdatedAt = time.Now().UTC()

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if params.Password != "" {
		hashed, err := s.hasher.Hash(params.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user updated", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Delete implements UserService.Delete
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// List implements UserService.List
func (s *userServiceImpl) List(ctx context.Context, query store.UserQuery) (*UserPage, error) {
	if query.Size <= 0 {
		query.Size = 10
	}
	if query.Page < 0 {
		query.Page = 0
	}

	users, total, err := s.userStore.List(ctx, query)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / query.Size
	if int(total)%query.Size != 0 {
		totalPages++
	}

	return &UserPage{
		Items:      users,
		Page:       query.Page,
		Size:       query.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
