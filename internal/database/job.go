package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/designpro/designpro/internal/usecase"
)

type Job struct {
	ID         uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Type       string         `gorm:"column:type;type:varchar(50);index"`
	Status     string         `gorm:"column:status;type:varchar(20);index"`
	Payload    datatypes.JSON `gorm:"column:payload"`
	Result     datatypes.JSON `gorm:"column:result"`
	Error      string         `gorm:"column:error;type:text"`
	StartedAt  *time.Time     `gorm:"column:started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (s *service) GetJobByID(ctx context.Context, id uuid.UUID) (usecase.Job, error) {
	var row Job

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return usecase.Job{}, translate(err)
	}

	return row.ConvertToUsecase(), nil
}

func (s *service) CreateJob(ctx context.Context, job usecase.Job) (usecase.Job, error) {
	row := Job{
		Type:    job.Type,
		Status:  job.Status,
		Payload: datatypes.JSON(job.Payload),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Job{}, translate(err)
	}

	return row.ConvertToUsecase(), nil
}

func (s *service) UpdateJob(ctx context.Context, job usecase.Job) (usecase.Job, error) {
	updates := map[string]any{
		"status":     job.Status,
		"error":      job.Error,
		"updated_at": time.Now().UTC(),
	}
	if job.Result != nil {
		updates["result"] = datatypes.JSON(job.Result)
	}
	if job.StartedAt != nil {
		updates["started_at"] = *job.StartedAt
	}
	if job.FinishedAt != nil {
		updates["finished_at"] = *job.FinishedAt
	}

	res := s.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", job.ID).
		Updates(updates)
	if res.Error != nil {
		return usecase.Job{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.Job{}, usecase.ErrNotFound
	}

	return s.GetJobByID(ctx, job.ID)
}

func (row Job) ConvertToUsecase() usecase.Job {
	return usecase.Job{
		ID:         row.ID,
		Type:       row.Type,
		Status:     row.Status,
		Payload:    []byte(row.Payload),
		Result:     []byte(row.Result),
		Error:      row.Error,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
