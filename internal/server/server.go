package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/designpro/designpro/internal/cache"
	"github.com/designpro/designpro/internal/config"
	"github.com/designpro/designpro/internal/database"
	"github.com/designpro/designpro/internal/email"
	"github.com/designpro/designpro/internal/filestorage"
	"github.com/designpro/designpro/internal/queue"
	"github.com/designpro/designpro/internal/telemetry"
	"github.com/designpro/designpro/internal/usecase"
)

// Service is everything the HTTP layer needs from the application core.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error

	ListTemplates(context.Context, usecase.ListTemplatesOption) ([]usecase.Template, int, error)
	GetTemplateByID(context.Context, uuid.UUID) (usecase.Template, error)
	CreateTemplate(context.Context, usecase.Template) (usecase.Template, error)
	UpdateTemplate(context.Context, usecase.Template) (usecase.Template, error)
	DeleteTemplate(context.Context, uuid.UUID) error
	ListTemplateCategories(context.Context) ([]string, error)
	GetTemplateStats(context.Context) (usecase.TemplateStats, error)

	ListDesigns(context.Context, usecase.ListDesignsOption) ([]usecase.Design, int, error)
	GetDesignByID(context.Context, uuid.UUID) (usecase.Design, error)
	CreateDesign(context.Context, usecase.Design) (usecase.Design, error)
	UpdateDesign(context.Context, uuid.UUID, usecase.UpdateDesignOption) (usecase.Design, error)
	DeleteDesign(context.Context, uuid.UUID) error
	DuplicateDesign(context.Context, uuid.UUID) (usecase.Design, error)
	ToggleDesignFavorite(context.Context, uuid.UUID) (bool, error)
	GetUserDesignStats(context.Context, string) (usecase.UserDesignStats, error)

	ListUsers(context.Context, usecase.ListUsersOption) ([]usecase.User, int, error)
	GetUserByID(context.Context, uuid.UUID) (usecase.User, error)
	CreateUser(context.Context, usecase.User) (usecase.User, error)
	UpdateUser(context.Context, usecase.User) (usecase.User, error)
	DeleteUser(context.Context, uuid.UUID) error
	GetUserProfile(context.Context, uuid.UUID) (usecase.UserProfile, error)

	ExportDesign(context.Context, uuid.UUID, usecase.ExportOption) (usecase.ExportResult, error)
	ExportDesignBase64(context.Context, uuid.UUID, usecase.ExportOption) (usecase.Base64Export, error)
	DesignShareQR(context.Context, uuid.UUID) ([]byte, error)
	BatchExportDesigns(context.Context, []uuid.UUID, string) (usecase.BatchExportResult, error)
	CreateExportJob(context.Context, []uuid.UUID, string) (usecase.Job, error)
	GetJobByID(context.Context, uuid.UUID) (usecase.Job, error)

	UploadImage(context.Context, usecase.UploadFile) (usecase.Upload, error)
	DeleteUploadedImage(context.Context, string) error
	GetTempUploadURL(context.Context, string) (string, error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	cache     *cache.Cache
	logger    *slog.Logger
}

func NewServer(logger *slog.Logger) *http.Server {
	repo := database.New()

	var fsp usecase.FileStorageProvider
	if endpoint := os.Getenv(config.ENV_KEY_MINIO_ENDPOINT); endpoint != "" {
		fsp = filestorage.NewMinIOStorage(
			os.Getenv(config.ENV_KEY_MINIO_BUCKET),
			os.Getenv(config.ENV_KEY_MINIO_TEMP_PATH),
			os.Getenv(config.ENV_KEY_MINIO_PUBLIC_PATH),
			endpoint,
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
		)
	}

	var mp usecase.MailProvider
	if host := os.Getenv(config.ENV_KEY_SMTP_HOST); host != "" {
		mp = email.NewEmailProvider(
			host,
			os.Getenv(config.ENV_KEY_SMTP_USERNAME),
			os.Getenv(config.ENV_KEY_SMTP_PASSWORD),
			os.Getenv(config.ENV_KEY_SMTP_PORT),
		)
	}

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	qc := queue.NewClient(redisAddr, os.Getenv(config.ENV_KEY_REDIS_PASSWORD))

	sv := usecase.New(repo, fsp, mp, qc)
	v := validator.New()

	// cache is optional; a nil client degrades to pass-through
	var c *cache.Cache
	if client, err := cache.Connect(
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
		os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
	); err != nil {
		logger.Warn("cache unavailable, serving without it", slog.String("err", err.Error()))
		c = cache.New(nil)
	} else {
		c = cache.New(client)
	}

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	s := &Server{
		port:      port,
		server:    sv,
		validator: v,
		cache:     c,
		logger:    logger,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// App bundles the HTTP server with the telemetry lifecycle so main can
// start and stop both together.
type App struct {
	httpServer       *http.Server
	telemetryStopper func(context.Context) error
}

func NewApp() (*App, error) {
	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(telemetry.NewTraceHandler(jsonHandler))
	slog.SetDefault(logger)

	stop, err := telemetry.Setup(context.Background(), "designpro-api")
	if err != nil {
		return nil, fmt.Errorf("telemetry setup: %w", err)
	}

	return &App{
		httpServer:       NewServer(logger),
		telemetryStopper: stop,
	}, nil
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(
		a.httpServer.Shutdown(ctx),
		a.telemetryStopper(ctx),
	)
}
