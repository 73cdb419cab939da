package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/blob"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher

	userStore *postgres.UserStore
	taskStore *postgres.TaskStore
	docStore  *postgres.DocumentStore
	blobStore *blob.FilesystemStore

	taskService service.TaskService
	userService service.UserService
}

// newApplication loads configuration, connects to the database, runs the
// migrations, and wires the stores, services and handler dependencies.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.MigrateUp(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	blobStore, err := blob.NewFilesystemStore(cfg.Storage.UploadDir, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	userStore := postgres.NewUserStore(db, appLogger)
	taskStore := postgres.NewTaskStore(db, appLogger)
	docStore := postgres.NewDocumentStore(db, appLogger)

	documents := service.NewDocumentManager(docStore, blobStore, appLogger)

	taskService, err := service.NewTaskService(taskStore, docStore, userStore, documents, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task service: %w", err)
	}

	hasher := auth.NewBcryptHasher(0)
	userService, err := service.NewUserService(userStore, hasher, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         appLogger,
		db:             db,
		jwtService:     jwtService,
		passwordHasher: hasher,
		userStore:      userStore,
		taskStore:      taskStore,
		docStore:       docStore,
		blobStore:      blobStore,
		taskService:    taskService,
		userService:    userService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
