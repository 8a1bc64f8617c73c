package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// HandleExportDesigns processes async batch export tasks. It is a thin
// wrapper; the work happens in the usecase.
func (h *Handlers) HandleExportDesigns(ctx context.Context, task *asynq.Task) error {
	var payload TaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		slog.Error("failed to parse task payload", slog.String("err", err.Error()))
		return err
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		slog.Error("invalid job id", slog.String("err", err.Error()))
		return err
	}

	slog.Info("processing export job", slog.String("job_id", jobID.String()))

	if err := h.usecase.ProcessExportDesignsJob(ctx, jobID); err != nil {
		slog.Error("failed to process export job",
			slog.String("job_id", jobID.String()),
			slog.String("err", err.Error()))
		return err
	}

	slog.Info("completed export job", slog.String("job_id", jobID.String()))
	return nil
}
