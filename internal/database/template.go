package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/designpro/designpro/internal/usecase"
)

type Template struct {
	ID          uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string         `gorm:"column:name;type:varchar(255)"`
	Category    string         `gorm:"column:category;type:varchar(100);index"`
	Description string         `gorm:"column:description;type:text"`
	Width       int            `gorm:"column:width"`
	Height      int            `gorm:"column:height"`
	Preview     string         `gorm:"column:preview;type:text"`
	Elements    datatypes.JSON `gorm:"column:elements;type:jsonb"`
	Tags        datatypes.JSON `gorm:"column:tags;type:jsonb"`
	IsPremium   bool           `gorm:"column:is_premium"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (Template) TableName() string {
	return "templates"
}

func applyTemplateFilters(db *gorm.DB, opt usecase.ListTemplatesOption) *gorm.DB {
	if opt.Category != "" {
		db = db.Where("category = ?", opt.Category)
	}
	if opt.Search != "" {
		q := "%" + opt.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", q, q)
	}
	if len(opt.Tags) > 0 {
		// OR semantics: a record matches when its tag set intersects
		// the requested set.
		db = db.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag IN ?)", opt.Tags)
	}
	if opt.IsPremium != nil {
		db = db.Where("is_premium = ?", *opt.IsPremium)
	}
	return db
}

func (s *service) ListTemplates(ctx context.Context, opt usecase.ListTemplatesOption) ([]usecase.Template, int, error) {
	var (
		rows  []Template
		count int64
	)

	db := applyTemplateFilters(s.db.Model([]Template{}).WithContext(ctx), opt)

	err := db.
		Count(&count).
		Order("created_at, id").
		Limit(opt.Limit).
		Offset(opt.Skip).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, translate(err)
	}

	list := make([]usecase.Template, 0, len(rows))
	for _, row := range rows {
		t, err := row.ConvertToUsecase()
		if err != nil {
			return nil, 0, err
		}
		list = append(list, t)
	}

	return list, int(count), nil
}

func (s *service) GetTemplateByID(ctx context.Context, id uuid.UUID) (usecase.Template, error) {
	var row Template

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return usecase.Template{}, translate(err)
	}

	return row.ConvertToUsecase()
}

func (s *service) CreateTemplate(ctx context.Context, t usecase.Template) (usecase.Template, error) {
	elements, err := marshalElements(t.Elements)
	if err != nil {
		return usecase.Template{}, err
	}
	tags, err := marshalTags(t.Tags)
	if err != nil {
		return usecase.Template{}, err
	}

	row := Template{
		ID:          t.ID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Width:       t.Dimensions.Width,
		Height:      t.Dimensions.Height,
		Preview:     t.Preview,
		Elements:    elements,
		Tags:        tags,
		IsPremium:   t.IsPremium,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Template{}, translate(err)
	}

	return row.ConvertToUsecase()
}

// UpdateTemplate fully replaces the record body, keeping id and createdAt.
func (s *service) UpdateTemplate(ctx context.Context, t usecase.Template) (usecase.Template, error) {
	elements, err := marshalElements(t.Elements)
	if err != nil {
		return usecase.Template{}, err
	}
	tags, err := marshalTags(t.Tags)
	if err != nil {
		return usecase.Template{}, err
	}

	res := s.db.WithContext(ctx).Model(&Template{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"name":        t.Name,
			"category":    t.Category,
			"description": t.Description,
			"width":       t.Dimensions.Width,
			"height":      t.Dimensions.Height,
			"preview":     t.Preview,
			"elements":    elements,
			"tags":        tags,
			"is_premium":  t.IsPremium,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return usecase.Template{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.Template{}, usecase.ErrNotFound
	}

	return s.GetTemplateByID(ctx, t.ID)
}

func (s *service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Template{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (s *service) ListTemplateCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&Template{}).
		Distinct().
		Order("category").
		Pluck("category", &categories).
		Error
	if err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *service) GetTemplateStats(ctx context.Context) (usecase.TemplateStats, error) {
	var total, premium int64

	if err := s.db.WithContext(ctx).Model(&Template{}).Count(&total).Error; err != nil {
		return usecase.TemplateStats{}, translate(err)
	}
	if err := s.db.WithContext(ctx).Model(&Template{}).
		Where("is_premium = ?", true).
		Count(&premium).Error; err != nil {
		return usecase.TemplateStats{}, translate(err)
	}

	var categories []usecase.CategoryCount
	err := s.db.WithContext(ctx).Model(&Template{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&categories).
		Error
	if err != nil {
		return usecase.TemplateStats{}, translate(err)
	}

	return usecase.TemplateStats{
		Total:      int(total),
		Premium:    int(premium),
		Free:       int(total - premium),
		Categories: categories,
	}, nil
}

func (row Template) ConvertToUsecase() (usecase.Template, error) {
	elements, err := unmarshalElements(row.Elements)
	if err != nil {
		return usecase.Template{}, err
	}
	tags, err := unmarshalTags(row.Tags)
	if err != nil {
		return usecase.Template{}, err
	}

	return usecase.Template{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Description: row.Description,
		Dimensions:  usecase.Dimensions{Width: row.Width, Height: row.Height},
		Preview:     row.Preview,
		Elements:    elements,
		Tags:        tags,
		IsPremium:   row.IsPremium,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
