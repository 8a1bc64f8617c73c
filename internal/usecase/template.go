package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Template is a reusable starting point for a design.
type Template struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
	Dimensions  Dimensions
	Preview     string
	Elements    []Element
	Tags        []string
	IsPremium   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListTemplatesOption struct {
	Skip  int
	Limit int

	Category  string
	Search    string
	Tags      []string
	IsPremium *bool
}

type CategoryCount struct {
	Category string
	Count    int
}

type TemplateStats struct {
	Total      int
	Premium    int
	Free       int
	Categories []CategoryCount
}

func (u Usecase) ListTemplates(ctx context.Context, opt ListTemplatesOption) ([]Template, int, error) {
	return u.repo.ListTemplates(ctx, opt)
}

func (u Usecase) GetTemplateByID(ctx context.Context, id uuid.UUID) (Template, error) {
	return u.repo.GetTemplateByID(ctx, id)
}

func (u Usecase) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	elements, err := NormalizeElements(t.Elements)
	if err != nil {
		return Template{}, err
	}
	t.Elements = elements

	return u.repo.CreateTemplate(ctx, t)
}

// UpdateTemplate replaces the whole record except id and createdAt.
func (u Usecase) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	elements, err := NormalizeElements(t.Elements)
	if err != nil {
		return Template{}, err
	}
	t.Elements = elements

	return u.repo.UpdateTemplate(ctx, t)
}

func (u Usecase) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return u.repo.DeleteTemplate(ctx, id)
}

func (u Usecase) ListTemplateCategories(ctx context.Context) ([]string, error) {
	return u.repo.ListTemplateCategories(ctx)
}

func (u Usecase) GetTemplateStats(ctx context.Context) (TemplateStats, error) {
	return u.repo.GetTemplateStats(ctx)
}
