package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/designpro/designpro/internal/usecase"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (s *service) ListUsers(ctx context.Context, opt usecase.ListUsersOption) ([]usecase.User, int, error) {
	var (
		rows  []User
		count int64
	)

	err := s.db.Model([]User{}).WithContext(ctx).
		Count(&count).
		Order("created_at, id").
		Limit(opt.Limit).
		Offset(opt.Skip).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, translate(err)
	}

	list := make([]usecase.User, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.ConvertToUsecase())
	}

	return list, int(count), nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (usecase.User, error) {
	var row User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return usecase.User{}, translate(err)
	}

	return row.ConvertToUsecase(), nil
}

// CreateUser inserts an account. The unique index on email turns a
// duplicate into usecase.ErrConflict.
func (s *service) CreateUser(ctx context.Context, user usecase.User) (usecase.User, error) {
	row := User{
		Name:  user.Name,
		Email: user.Email,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.User{}, translate(err)
	}

	return row.ConvertToUsecase(), nil
}

func (s *service) UpdateUser(ctx context.Context, user usecase.User) (usecase.User, error) {
	res := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":       user.Name,
			"email":      user.Email,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return usecase.User{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.User{}, usecase.ErrNotFound
	}

	return s.GetUserByID(ctx, user.ID)
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (row User) ConvertToUsecase() usecase.User {
	return usecase.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
