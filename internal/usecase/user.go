package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListUsersOption struct {
	Skip  int
	Limit int
}

type UserProfile struct {
	User        User
	DesignCount int
	MemberSince time.Time
}

func (u Usecase) ListUsers(ctx context.Context, opt ListUsersOption) ([]User, int, error) {
	return u.repo.ListUsers(ctx, opt)
}

func (u Usecase) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return u.repo.GetUserByID(ctx, id)
}

// CreateUser inserts a new account. Email uniqueness is enforced by the
// store's unique index; a duplicate surfaces as ErrConflict. When SMTP is
// configured a welcome mail is sent best-effort.
func (u Usecase) CreateUser(ctx context.Context, user User) (User, error) {
	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}

	if u.mailProvider != nil {
		if err := u.mailProvider.SendEmail(ctx, welcomeEmail(created)); err != nil {
			slog.Warn("failed to send welcome email",
				slog.String("user_id", created.ID.String()),
				slog.String("err", err.Error()))
		}
	}

	return created, nil
}

func (u Usecase) UpdateUser(ctx context.Context, user User) (User, error) {
	return u.repo.UpdateUser(ctx, user)
}

func (u Usecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return u.repo.DeleteUser(ctx, id)
}

func (u Usecase) GetUserProfile(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	user, err := u.repo.GetUserByID(ctx, id)
	if err != nil {
		return UserProfile{}, err
	}

	count, err := u.repo.CountDesigns(ctx, ListDesignsOption{UserID: id.String()})
	if err != nil {
		return UserProfile{}, err
	}

	return UserProfile{
		User:        user,
		DesignCount: count,
		MemberSince: user.CreatedAt,
	}, nil
}
