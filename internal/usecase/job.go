package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// JobTypeExportDesigns is the queue task name for async batch exports.
const JobTypeExportDesigns = "export:designs"

// Job statuses.
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

type Job struct {
	ID         uuid.UUID
	Type       string
	Status     string
	Payload    []byte
	Result     []byte
	Error      string
	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ExportDesignsJobPayload struct {
	DesignIDs []uuid.UUID `json:"design_ids"`
	Format    string      `json:"format"`
}

type ExportDesignsJobItem struct {
	DesignID string `json:"design_id"`
	Success  bool   `json:"success"`
	Object   string `json:"object,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CreateExportJob records an async batch export job and hands it to the
// queue. Enqueue failures are logged, not fatal: the job row stays
// PENDING and can be re-enqueued.
func (u Usecase) CreateExportJob(ctx context.Context, ids []uuid.UUID, format string) (Job, error) {
	payload, err := json.Marshal(ExportDesignsJobPayload{
		DesignIDs: ids,
		Format:    format,
	})
	if err != nil {
		return Job{}, err
	}

	job, err := u.repo.CreateJob(ctx, Job{
		Type:    JobTypeExportDesigns,
		Status:  JobStatusPending,
		Payload: payload,
	})
	if err != nil {
		return Job{}, err
	}

	if u.queueClient != nil {
		if err := u.queueClient.EnqueueJob(ctx, job.ID, job.Type, payload); err != nil {
			slog.Error("failed to enqueue export job",
				slog.String("job_id", job.ID.String()),
				slog.String("err", err.Error()))
		}
	}

	return job, nil
}

func (u Usecase) GetJobByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return u.repo.GetJobByID(ctx, id)
}

// ProcessExportDesignsJob runs on the worker. Each design is exported to
// a placeholder image and stored as an artifact; per-design failures are
// recorded inline and the batch continues.
func (u Usecase) ProcessExportDesignsJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := u.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	var payload ExportDesignsJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse job payload: %w", err)
	}

	now := time.Now().UTC()
	job.Status = JobStatusProcessing
	job.StartedAt = &now
	if job, err = u.repo.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to update job to %s: %w", JobStatusProcessing, err)
	}

	items := make([]ExportDesignsJobItem, 0, len(payload.DesignIDs))
	for _, id := range payload.DesignIDs {
		items = append(items, u.exportDesignArtifact(ctx, jobID, id, payload.Format))
	}

	result, err := json.Marshal(items)
	finished := time.Now().UTC()
	job.FinishedAt = &finished
	if err != nil {
		job.Status = JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = JobStatusCompleted
		job.Result = result
	}

	if _, err := u.repo.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to finalize job: %w", err)
	}

	return nil
}

func (u Usecase) exportDesignArtifact(ctx context.Context, jobID, designID uuid.UUID, format string) ExportDesignsJobItem {
	item := ExportDesignsJobItem{DesignID: designID.String()}

	if _, err := u.repo.GetDesignByID(ctx, designID); err != nil {
		if errors.Is(err, ErrNotFound) {
			item.Error = "design not found"
		} else {
			item.Error = err.Error()
		}
		return item
	}

	if u.fileStorageProvider == nil {
		item.Error = "file storage not configured"
		return item
	}

	object := fmt.Sprintf("exports/%s/design_%s.%s", jobID, designID, format)
	if err := u.fileStorageProvider.PutObject(ctx, object, exportMimeType(format), placeholderImage(format)); err != nil {
		item.Error = err.Error()
		return item
	}

	item.Success = true
	item.Object = object
	if url, err := u.fileStorageProvider.GetPresignedURL(ctx, object); err == nil {
		item.URL = url
	}

	return item
}
