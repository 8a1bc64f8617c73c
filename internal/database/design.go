package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/designpro/designpro/internal/usecase"
)

type Design struct {
	ID           uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name         string         `gorm:"column:name;type:varchar(255)"`
	Description  string         `gorm:"column:description;type:text"`
	TemplateID   string         `gorm:"column:template_id;type:varchar(64)"`
	TemplateName string         `gorm:"column:template_name;type:varchar(255)"`
	Width        int            `gorm:"column:width"`
	Height       int            `gorm:"column:height"`
	Elements     datatypes.JSON `gorm:"column:elements;type:jsonb"`
	Thumbnail    string         `gorm:"column:thumbnail;type:text"`
	UserID       string         `gorm:"column:user_id;type:varchar(64);index"`
	Tags         datatypes.JSON `gorm:"column:tags;type:jsonb"`
	IsFavorite   bool           `gorm:"column:is_favorite"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;index"`
}

func (Design) TableName() string {
	return "designs"
}

func applyDesignFilters(db *gorm.DB, opt usecase.ListDesignsOption) *gorm.DB {
	if opt.UserID != "" {
		db = db.Where("user_id = ?", opt.UserID)
	}
	if opt.Search != "" {
		q := "%" + opt.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", q, q)
	}
	if len(opt.Tags) > 0 {
		db = db.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag IN ?)", opt.Tags)
	}
	if opt.IsFavorite != nil {
		db = db.Where("is_favorite = ?", *opt.IsFavorite)
	}
	return db
}

func (s *service) ListDesigns(ctx context.Context, opt usecase.ListDesignsOption) ([]usecase.Design, int, error) {
	var (
		rows  []Design
		count int64
	)

	db := applyDesignFilters(s.db.Model([]Design{}).WithContext(ctx), opt)

	// newest-updated first; id breaks ties so pagination stays stable
	err := db.
		Count(&count).
		Order("updated_at DESC, id").
		Limit(opt.Limit).
		Offset(opt.Skip).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, translate(err)
	}

	list := make([]usecase.Design, 0, len(rows))
	for _, row := range rows {
		d, err := row.ConvertToUsecase()
		if err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}

	return list, int(count), nil
}

func (s *service) CountDesigns(ctx context.Context, opt usecase.ListDesignsOption) (int, error) {
	var count int64
	err := applyDesignFilters(s.db.Model([]Design{}).WithContext(ctx), opt).
		Count(&count).
		Error
	if err != nil {
		return 0, translate(err)
	}
	return int(count), nil
}

func (s *service) GetDesignByID(ctx context.Context, id uuid.UUID) (usecase.Design, error) {
	var row Design

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return usecase.Design{}, translate(err)
	}

	return row.ConvertToUsecase()
}

func (s *service) CreateDesign(ctx context.Context, d usecase.Design) (usecase.Design, error) {
	elements, err := marshalElements(d.Elements)
	if err != nil {
		return usecase.Design{}, err
	}
	tags, err := marshalTags(d.Tags)
	if err != nil {
		return usecase.Design{}, err
	}

	row := Design{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		TemplateID:   d.TemplateID,
		TemplateName: d.TemplateName,
		Width:        d.Dimensions.Width,
		Height:       d.Dimensions.Height,
		Elements:     elements,
		Thumbnail:    d.Thumbnail,
		UserID:       d.UserID,
		Tags:         tags,
		IsFavorite:   d.IsFavorite,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Design{}, translate(err)
	}

	return row.ConvertToUsecase()
}

// UpdateDesign applies a partial patch: only non-nil fields overwrite.
func (s *service) UpdateDesign(ctx context.Context, id uuid.UUID, opt usecase.UpdateDesignOption) (usecase.Design, error) {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}

	if opt.Name != nil {
		updates["name"] = *opt.Name
	}
	if opt.Description != nil {
		updates["description"] = *opt.Description
	}
	if opt.Elements != nil {
		elements, err := marshalElements(*opt.Elements)
		if err != nil {
			return usecase.Design{}, err
		}
		updates["elements"] = elements
	}
	if opt.Thumbnail != nil {
		updates["thumbnail"] = *opt.Thumbnail
	}
	if opt.Tags != nil {
		tags, err := marshalTags(*opt.Tags)
		if err != nil {
			return usecase.Design{}, err
		}
		updates["tags"] = tags
	}
	if opt.IsFavorite != nil {
		updates["is_favorite"] = *opt.IsFavorite
	}

	res := s.db.WithContext(ctx).Model(&Design{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return usecase.Design{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.Design{}, usecase.ErrNotFound
	}

	return s.GetDesignByID(ctx, id)
}

func (s *service) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Design{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// ToggleDesignFavorite negates is_favorite in a single conditional
// update so concurrent toggles cannot lose writes.
func (s *service) ToggleDesignFavorite(ctx context.Context, id uuid.UUID) (usecase.Design, error) {
	var row Design

	res := s.db.WithContext(ctx).Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_favorite": gorm.Expr("NOT is_favorite"),
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return usecase.Design{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.Design{}, usecase.ErrNotFound
	}

	return row.ConvertToUsecase()
}

func (row Design) ConvertToUsecase() (usecase.Design, error) {
	elements, err := unmarshalElements(row.Elements)
	if err != nil {
		return usecase.Design{}, err
	}
	tags, err := unmarshalTags(row.Tags)
	if err != nil {
		return usecase.Design{}, err
	}

	return usecase.Design{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		TemplateID:   row.TemplateID,
		TemplateName: row.TemplateName,
		Dimensions:   usecase.Dimensions{Width: row.Width, Height: row.Height},
		Elements:     elements,
		Thumbnail:    row.Thumbnail,
		UserID:       row.UserID,
		Tags:         tags,
		IsFavorite:   row.IsFavorite,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
