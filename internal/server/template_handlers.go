package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/cache"
	"github.com/designpro/designpro/internal/usecase"
)

type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Dimensions  Dimensions `json:"dimensions"`
	Preview     string     `json:"preview,omitempty"`
	Elements    []Element  `json:"elements"`
	Tags        []string   `json:"tags"`
	IsPremium   bool       `json:"isPremium"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

func toTemplateDTO(t usecase.Template) Template {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return Template{
		ID:          t.ID.String(),
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Dimensions:  Dimensions{Width: t.Dimensions.Width, Height: t.Dimensions.Height},
		Preview:     t.Preview,
		Elements:    fromUsecaseElements(t.Elements),
		Tags:        tags,
		IsPremium:   t.IsPremium,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type ListTemplatesRequest struct {
	Skip      int      `query:"skip" validate:"gte=0"`
	Limit     int      `query:"limit" validate:"required,gte=1,lte=100"`
	Category  string   `query:"category"`
	Search    string   `query:"search"`
	Tags      []string `query:"tags"`
	IsPremium *bool    `query:"is_premium"`
}

func (s *Server) ListTemplates(ctx echo.Context) error {
	var req = ListTemplatesRequest{Limit: 50}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	list, total, err := s.server.ListTemplates(ctx.Request().Context(), usecase.ListTemplatesOption{
		Skip:      req.Skip,
		Limit:     req.Limit,
		Category:  req.Category,
		Search:    req.Search,
		Tags:      splitTags(req.Tags),
		IsPremium: req.IsPremium,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	templates := make([]Template, 0, len(list))
	for _, t := range list {
		templates = append(templates, toTemplateDTO(t))
	}

	return ctx.JSON(200, Res{
		Data: templates,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}

type GetTemplateByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetTemplateByID(ctx echo.Context) error {
	var req GetTemplateByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	t, err := s.server.GetTemplateByID(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toTemplateDTO(t)})
}

type CreateTemplateRequest struct {
	Name        string     `json:"name" validate:"required"`
	Category    string     `json:"category" validate:"required"`
	Description string     `json:"description"`
	Dimensions  Dimensions `json:"dimensions" validate:"required"`
	Preview     string     `json:"preview"`
	Elements    []Element  `json:"elements" validate:"dive"`
	Tags        []string   `json:"tags"`
	IsPremium   bool       `json:"isPremium"`
}

func (s *Server) CreateTemplate(ctx echo.Context) error {
	var req CreateTemplateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	t, err := s.server.CreateTemplate(ctx.Request().Context(), usecase.Template{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Dimensions:  usecase.Dimensions{Width: req.Dimensions.Width, Height: req.Dimensions.Height},
		Preview:     req.Preview,
		Elements:    toUsecaseElements(req.Elements),
		Tags:        req.Tags,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	s.cache.Invalidate(ctx.Request().Context(), cache.KeyTemplateCategories, cache.KeyTemplateStats)

	return ctx.JSON(201, Res{Data: toTemplateDTO(t)})
}

type UpdateTemplateRequest struct {
	ID string `param:"id" validate:"required,uuid"`

	Name        string     `json:"name" validate:"required"`
	Category    string     `json:"category" validate:"required"`
	Description string     `json:"description"`
	Dimensions  Dimensions `json:"dimensions" validate:"required"`
	Preview     string     `json:"preview"`
	Elements    []Element  `json:"elements" validate:"dive"`
	Tags        []string   `json:"tags"`
	IsPremium   bool       `json:"isPremium"`
}

// UpdateTemplate replaces every mutable field; id and createdAt are kept.
func (s *Server) UpdateTemplate(ctx echo.Context) error {
	var req UpdateTemplateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	t, err := s.server.UpdateTemplate(ctx.Request().Context(), usecase.Template{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Dimensions:  usecase.Dimensions{Width: req.Dimensions.Width, Height: req.Dimensions.Height},
		Preview:     req.Preview,
		Elements:    toUsecaseElements(req.Elements),
		Tags:        req.Tags,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	s.cache.Invalidate(ctx.Request().Context(), cache.KeyTemplateCategories, cache.KeyTemplateStats)

	return ctx.JSON(200, Res{Data: toTemplateDTO(t)})
}

type DeleteTemplateRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DeleteTemplate(ctx echo.Context) error {
	var req DeleteTemplateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	if err := s.server.DeleteTemplate(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	s.cache.Invalidate(ctx.Request().Context(), cache.KeyTemplateCategories, cache.KeyTemplateStats)

	return ctx.JSON(200, Res{Message: "template deleted"})
}

func (s *Server) ListTemplateCategories(ctx echo.Context) error {
	var (
		rctx       = ctx.Request().Context()
		categories []string
	)

	if hit, err := s.cache.GetJSON(rctx, cache.KeyTemplateCategories, &categories); err == nil && hit {
		return ctx.JSON(200, Res{Data: categories})
	}

	categories, err := s.server.ListTemplateCategories(rctx)
	if err != nil {
		return errJSON(ctx, err)
	}
	if categories == nil {
		categories = []string{}
	}

	_ = s.cache.SetJSON(rctx, cache.KeyTemplateCategories, categories, cache.DefaultTTL)

	return ctx.JSON(200, Res{Data: categories})
}

type TemplateStats struct {
	Total      int             `json:"total"`
	Premium    int             `json:"premium"`
	Free       int             `json:"free"`
	Categories []CategoryCount `json:"categories"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func (s *Server) GetTemplateStats(ctx echo.Context) error {
	var (
		rctx  = ctx.Request().Context()
		stats TemplateStats
	)

	if hit, err := s.cache.GetJSON(rctx, cache.KeyTemplateStats, &stats); err == nil && hit {
		return ctx.JSON(200, Res{Data: stats})
	}

	st, err := s.server.GetTemplateStats(rctx)
	if err != nil {
		return errJSON(ctx, err)
	}

	stats = TemplateStats{
		Total:      st.Total,
		Premium:    st.Premium,
		Free:       st.Free,
		Categories: make([]CategoryCount, 0, len(st.Categories)),
	}
	for _, c := range st.Categories {
		stats.Categories = append(stats.Categories, CategoryCount{
			Category: c.Category,
			Count:    c.Count,
		})
	}

	_ = s.cache.SetJSON(rctx, cache.KeyTemplateStats, stats, cache.DefaultTTL)

	return ctx.JSON(200, Res{Data: stats})
}
