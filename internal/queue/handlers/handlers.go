package handlers

import (
	"github.com/designpro/designpro/internal/usecase"
)

// Handlers contains all queue task handlers
type Handlers struct {
	usecase usecase.Usecase
}

// NewHandlers creates a new handlers instance
func NewHandlers(uc usecase.Usecase) *Handlers {
	return &Handlers{
		usecase: uc,
	}
}

// TaskPayload represents the standard payload structure for all tasks
type TaskPayload struct {
	JobID   string `json:"job_id"`
	Type    string `json:"type"`
	Payload string `json:"payload"`
}
