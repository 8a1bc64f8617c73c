package usecase

import (
	"context"

	"github.com/google/uuid"
)

func New(
	repo Repository,
	fsp FileStorageProvider,
	mp MailProvider,
	qc QueueClient,
) Usecase {
	return Usecase{
		repo:                repo,
		fileStorageProvider: fsp,
		mailProvider:        mp,
		queueClient:         qc,
	}
}

type Repository interface {
	Health() map[string]string
	Close() error

	ListTemplates(context.Context, ListTemplatesOption) ([]Template, int, error)
	GetTemplateByID(context.Context, uuid.UUID) (Template, error)
	CreateTemplate(context.Context, Template) (Template, error)
	UpdateTemplate(context.Context, Template) (Template, error)
	DeleteTemplate(context.Context, uuid.UUID) error
	ListTemplateCategories(context.Context) ([]string, error)
	GetTemplateStats(context.Context) (TemplateStats, error)

	ListDesigns(context.Context, ListDesignsOption) ([]Design, int, error)
	CountDesigns(context.Context, ListDesignsOption) (int, error)
	GetDesignByID(context.Context, uuid.UUID) (Design, error)
	CreateDesign(context.Context, Design) (Design, error)
	UpdateDesign(context.Context, uuid.UUID, UpdateDesignOption) (Design, error)
	DeleteDesign(context.Context, uuid.UUID) error
	ToggleDesignFavorite(context.Context, uuid.UUID) (Design, error)

	ListUsers(context.Context, ListUsersOption) ([]User, int, error)
	GetUserByID(context.Context, uuid.UUID) (User, error)
	CreateUser(context.Context, User) (User, error)
	UpdateUser(context.Context, User) (User, error)
	DeleteUser(context.Context, uuid.UUID) error

	GetJobByID(context.Context, uuid.UUID) (Job, error)
	CreateJob(context.Context, Job) (Job, error)
	UpdateJob(context.Context, Job) (Job, error)
}

// FileStorageProvider stores uploaded assets and export artifacts.
type FileStorageProvider interface {
	GetPublicURL(context.Context) (string, error)
	GetTempUploadURL(ctx context.Context, name string) (string, error)
	PutObject(ctx context.Context, path, contentType string, data []byte) error
	RemoveObject(ctx context.Context, path string) error
	GetPresignedURL(ctx context.Context, path string) (string, error)
}

type MailProvider interface {
	SendEmail(context.Context, Email) error
}

// QueueClient enqueues background jobs for the worker process.
type QueueClient interface {
	EnqueueJob(ctx context.Context, jobID uuid.UUID, jobType string, payload []byte) error
}

type Usecase struct {
	repo                Repository
	fileStorageProvider FileStorageProvider
	mailProvider        MailProvider
	queueClient         QueueClient
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}
