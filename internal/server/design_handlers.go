package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/usecase"
)

type Design struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	TemplateID   string     `json:"templateId,omitempty"`
	TemplateName string     `json:"templateName,omitempty"`
	Dimensions   Dimensions `json:"dimensions"`
	Elements     []Element  `json:"elements"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	UserID       string     `json:"userId"`
	Tags         []string   `json:"tags"`
	IsFavorite   bool       `json:"isFavorite"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

func toDesignDTO(d usecase.Design) Design {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return Design{
		ID:           d.ID.String(),
		Name:         d.Name,
		Description:  d.Description,
		TemplateID:   d.TemplateID,
		TemplateName: d.TemplateName,
		Dimensions:   Dimensions{Width: d.Dimensions.Width, Height: d.Dimensions.Height},
		Elements:     fromUsecaseElements(d.Elements),
		Thumbnail:    d.Thumbnail,
		UserID:       d.UserID,
		Tags:         tags,
		IsFavorite:   d.IsFavorite,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type ListDesignsRequest struct {
	Skip       int      `query:"skip" validate:"gte=0"`
	Limit      int      `query:"limit" validate:"required,gte=1,lte=100"`
	UserID     string   `query:"user_id"`
	Search     string   `query:"search"`
	Tags       []string `query:"tags"`
	IsFavorite *bool    `query:"is_favorite"`
}

func (s *Server) ListDesigns(ctx echo.Context) error {
	var req = ListDesignsRequest{Limit: 50}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	list, total, err := s.server.ListDesigns(ctx.Request().Context(), usecase.ListDesignsOption{
		Skip:       req.Skip,
		Limit:      req.Limit,
		UserID:     req.UserID,
		Search:     req.Search,
		Tags:       splitTags(req.Tags),
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	designs := make([]Design, 0, len(list))
	for _, d := range list {
		designs = append(designs, toDesignDTO(d))
	}

	return ctx.JSON(200, Res{
		Data: designs,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}

type GetDesignByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetDesignByID(ctx echo.Context) error {
	var req GetDesignByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	d, err := s.server.GetDesignByID(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toDesignDTO(d)})
}

type CreateDesignRequest struct {
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	TemplateID   string     `json:"templateId"`
	TemplateName string     `json:"templateName"`
	Dimensions   Dimensions `json:"dimensions" validate:"required"`
	Elements     []Element  `json:"elements" validate:"dive"`
	Thumbnail    string     `json:"thumbnail"`
	UserID       string     `json:"userId"`
	Tags         []string   `json:"tags"`
	IsFavorite   bool       `json:"isFavorite"`
}

func (s *Server) CreateDesign(ctx echo.Context) error {
	var req CreateDesignRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	d, err := s.server.CreateDesign(ctx.Request().Context(), usecase.Design{
		Name:         req.Name,
		Description:  req.Description,
		TemplateID:   req.TemplateID,
		TemplateName: req.TemplateName,
		Dimensions:   usecase.Dimensions{Width: req.Dimensions.Width, Height: req.Dimensions.Height},
		Elements:     toUsecaseElements(req.Elements),
		Thumbnail:    req.Thumbnail,
		UserID:       req.UserID,
		Tags:         req.Tags,
		IsFavorite:   req.IsFavorite,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toDesignDTO(d)})
}

type UpdateDesignRequest struct {
	ID string `param:"id" validate:"required,uuid"`

	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Elements    *[]Element `json:"elements"`
	Thumbnail   *string    `json:"thumbnail"`
	Tags        *[]string  `json:"tags"`
	IsFavorite  *bool      `json:"isFavorite"`
}

// UpdateDesign is a partial update: absent fields keep their values.
func (s *Server) UpdateDesign(ctx echo.Context) error {
	var req UpdateDesignRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	opt := usecase.UpdateDesignOption{
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		IsFavorite:  req.IsFavorite,
	}
	if req.Elements != nil {
		elements := toUsecaseElements(*req.Elements)
		opt.Elements = &elements
	}

	id, _ := uuid.Parse(req.ID)
	d, err := s.server.UpdateDesign(ctx.Request().Context(), id, opt)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toDesignDTO(d)})
}

type DeleteDesignRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DeleteDesign(ctx echo.Context) error {
	var req DeleteDesignRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	if err := s.server.DeleteDesign(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "design deleted"})
}

type DuplicateDesignRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DuplicateDesign(ctx echo.Context) error {
	var req DuplicateDesignRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	d, err := s.server.DuplicateDesign(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toDesignDTO(d)})
}

type ToggleDesignFavoriteRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type ToggleDesignFavoriteResult struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

func (s *Server) ToggleDesignFavorite(ctx echo.Context) error {
	var req ToggleDesignFavoriteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	fav, err := s.server.ToggleDesignFavorite(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: ToggleDesignFavoriteResult{
		ID:         req.ID,
		IsFavorite: fav,
	}})
}

type GetUserDesignStatsRequest struct {
	UserID string `param:"user_id" validate:"required"`
}

type UserDesignStats struct {
	Total     int      `json:"total"`
	Favorites int      `json:"favorites"`
	Recent    []Design `json:"recent"`
}

func (s *Server) GetUserDesignStats(ctx echo.Context) error {
	var req GetUserDesignStatsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	st, err := s.server.GetUserDesignStats(ctx.Request().Context(), req.UserID)
	if err != nil {
		return errJSON(ctx, err)
	}

	recent := make([]Design, 0, len(st.Recent))
	for _, d := range st.Recent {
		recent = append(recent, toDesignDTO(d))
	}

	return ctx.JSON(200, Res{Data: UserDesignStats{
		Total:     st.Total,
		Favorites: st.Favorites,
		Recent:    recent,
	}})
}
