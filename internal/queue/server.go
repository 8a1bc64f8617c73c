package queue

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/designpro/designpro/internal/config"
	"github.com/designpro/designpro/internal/database"
	"github.com/designpro/designpro/internal/email"
	"github.com/designpro/designpro/internal/filestorage"
	"github.com/designpro/designpro/internal/queue/handlers"
	"github.com/designpro/designpro/internal/usecase"
)

// Worker processes queued tasks with their own repository and providers.
type Worker struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	repo        interface{ Close() error }
}

// NewWorker creates a fully configured worker with all dependencies
func NewWorker(logger *slog.Logger) (*Worker, error) {
	logger.Info("Initializing worker dependencies...")

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

	// workers never enqueue, so no queue client
	uc := usecase.New(repo, fsp, mp, nil)

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)

	workerConcurrency := 10
	if wc := os.Getenv(config.ENV_KEY_WORKER_CONCURRENCY); wc != "" {
		var n int
		if _, err := fmt.Sscanf(wc, "%d", &n); err == nil && n > 0 {
			workerConcurrency = n
		}
	}

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
		},
		asynq.Config{
			Concurrency: workerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	mux := asynq.NewServeMux()

	h := handlers.NewHandlers(uc)

	// one line per job type
	mux.HandleFunc(usecase.JobTypeExportDesigns, h.HandleExportDesigns)

	logger.Info("Worker registered handlers", slog.String("task", usecase.JobTypeExportDesigns))

	return &Worker{
		asynqServer: asynqServer,
		mux:         mux,
		repo:        repo,
	}, nil
}

// Start starts the worker server
func (w *Worker) Start() error {
	return w.asynqServer.Start(w.mux)
}

// Stop stops the worker server gracefully
func (w *Worker) Stop() {
	w.asynqServer.Shutdown()

	if w.repo != nil {
		if err := w.repo.Close(); err != nil {
			slog.Error("error closing database", slog.String("err", err.Error()))
		}
	}
}
