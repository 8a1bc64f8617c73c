package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/usecase"
)

type ExportFormat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mimeType"`
}

func (s *Server) ListExportFormats(ctx echo.Context) error {
	list := usecase.ExportFormats()
	formats := make([]ExportFormat, 0, len(list))
	for _, f := range list {
		formats = append(formats, ExportFormat{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Extension:   f.Extension,
			MimeType:    f.MimeType,
		})
	}
	return ctx.JSON(200, Res{Data: formats})
}

type ExportDesignRequest struct {
	ID string `param:"id" validate:"required,uuid"`

	Format  string `json:"format" validate:"omitempty,oneof=png jpg svg"`
	Quality int    `json:"quality" validate:"omitempty,gte=1,lte=100"`
	Width   *int   `json:"width" validate:"omitempty,gt=0"`
	Height  *int   `json:"height" validate:"omitempty,gt=0"`
}

// ExportDesign streams the rendered image back as an attachment.
func (s *Server) ExportDesign(ctx echo.Context) error {
	var req = ExportDesignRequest{Format: "png", Quality: 90}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	result, err := s.server.ExportDesign(ctx.Request().Context(), id, usecase.ExportOption{
		Format:  req.Format,
		Quality: req.Quality,
		Width:   req.Width,
		Height:  req.Height,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	return ctx.Blob(200, result.ContentType, result.Data)
}

type Base64Export struct {
	DesignID   string `json:"designId"`
	Format     string `json:"format"`
	Base64     string `json:"base64"`
	ExportedAt string `json:"exportedAt"`
}

func (s *Server) ExportDesignBase64(ctx echo.Context) error {
	var req = ExportDesignRequest{Format: "png", Quality: 90}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	exp, err := s.server.ExportDesignBase64(ctx.Request().Context(), id, usecase.ExportOption{
		Format:  req.Format,
		Quality: req.Quality,
		Width:   req.Width,
		Height:  req.Height,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: Base64Export{
		DesignID:   exp.DesignID.String(),
		Format:     exp.Format,
		Base64:     exp.Base64,
		ExportedAt: exp.ExportedAt.UTC().Format(time.RFC3339),
	}})
}

type DesignShareQRRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DesignShareQR(ctx echo.Context) error {
	var req DesignShareQRRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	png, err := s.server.DesignShareQR(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.Blob(200, "image/png", png)
}

type BatchExportRequest struct {
	DesignIDs []string `json:"designIds" validate:"required,min=1,max=50,dive,uuid"`
	Format    string   `json:"format" validate:"omitempty,oneof=png jpg svg"`
}

type BatchExportItem struct {
	DesignID string `json:"designId"`
	Success  bool   `json:"success"`
	Base64   string `json:"base64,omitempty"`
	Format   string `json:"format,omitempty"`
	Error    string `json:"error,omitempty"`
}

type BatchExportResult struct {
	BatchID    string            `json:"batchId"`
	Results    []BatchExportItem `json:"results"`
	ExportedAt string            `json:"exportedAt"`
}

func (s *Server) BatchExportDesigns(ctx echo.Context) error {
	var req = BatchExportRequest{Format: "png"}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	ids := make([]uuid.UUID, 0, len(req.DesignIDs))
	for _, raw := range req.DesignIDs {
		id, _ := uuid.Parse(raw)
		ids = append(ids, id)
	}

	batch, err := s.server.BatchExportDesigns(ctx.Request().Context(), ids, req.Format)
	if err != nil {
		return errJSON(ctx, err)
	}

	results := make([]BatchExportItem, 0, len(batch.Results))
	for _, r := range batch.Results {
		results = append(results, BatchExportItem{
			DesignID: r.DesignID,
			Success:  r.Success,
			Base64:   r.Base64,
			Format:   r.Format,
			Error:    r.Error,
		})
	}

	return ctx.JSON(200, Res{Data: BatchExportResult{
		BatchID:    batch.BatchID,
		Results:    results,
		ExportedAt: batch.ExportedAt.UTC().Format(time.RFC3339),
	}})
}

type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  *string         `json:"startedAt,omitempty"`
	FinishedAt *string         `json:"finishedAt,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

func toJobDTO(job usecase.Job) Job {
	j := Job{
		ID:        job.ID.String(),
		Type:      job.Type,
		Status:    job.Status,
		Payload:   json.RawMessage(job.Payload),
		Result:    json.RawMessage(job.Result),
		Error:     job.Error,
		CreatedAt: job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if job.StartedAt != nil {
		tmp := job.StartedAt.UTC().Format(time.RFC3339)
		j.StartedAt = &tmp
	}
	if job.FinishedAt != nil {
		tmp := job.FinishedAt.UTC().Format(time.RFC3339)
		j.FinishedAt = &tmp
	}
	return j
}

type CreateExportJobRequest struct {
	DesignIDs []string `json:"designIds" validate:"required,min=1,max=50,dive,uuid"`
	Format    string   `json:"format" validate:"omitempty,oneof=png jpg svg"`
}

// CreateExportJob accepts the batch and returns 202 with the job row;
// the worker picks it up from the queue.
func (s *Server) CreateExportJob(ctx echo.Context) error {
	var req = CreateExportJobRequest{Format: "png"}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	ids := make([]uuid.UUID, 0, len(req.DesignIDs))
	for _, raw := range req.DesignIDs {
		id, _ := uuid.Parse(raw)
		ids = append(ids, id)
	}

	job, err := s.server.CreateExportJob(ctx.Request().Context(), ids, req.Format)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(202, Res{Data: toJobDTO(job)})
}

type GetExportJobByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetExportJobByID(ctx echo.Context) error {
	var req GetExportJobByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	job, err := s.server.GetJobByID(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toJobDTO(job)})
}
