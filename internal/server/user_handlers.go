package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/usecase"
)

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u usecase.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type ListUsersRequest struct {
	Skip  int `query:"skip" validate:"gte=0"`
	Limit int `query:"limit" validate:"required,gte=1,lte=100"`
}

func (s *Server) ListUsers(ctx echo.Context) error {
	var req = ListUsersRequest{Limit: 50}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	list, total, err := s.server.ListUsers(ctx.Request().Context(), usecase.ListUsersOption{
		Skip:  req.Skip,
		Limit: req.Limit,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	users := make([]User, 0, len(list))
	for _, u := range list {
		users = append(users, toUserDTO(u))
	}

	return ctx.JSON(200, Res{
		Data: users,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}

type GetUserByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetUserByID(ctx echo.Context) error {
	var req GetUserByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	u, err := s.server.GetUserByID(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toUserDTO(u)})
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) CreateUser(ctx echo.Context) error {
	var req CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	u, err := s.server.CreateUser(ctx.Request().Context(), usecase.User{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toUserDTO(u)})
}

type UpdateUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`

	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) UpdateUser(ctx echo.Context) error {
	var req UpdateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	u, err := s.server.UpdateUser(ctx.Request().Context(), usecase.User{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toUserDTO(u)})
}

type DeleteUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DeleteUser(ctx echo.Context) error {
	var req DeleteUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	if err := s.server.DeleteUser(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "user deleted"})
}

type GetUserProfileRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type UserProfile struct {
	User        User   `json:"user"`
	DesignCount int    `json:"designCount"`
	MemberSince string `json:"memberSince"`
}

func (s *Server) GetUserProfile(ctx echo.Context) error {
	var req GetUserProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: err.Error()})
	}

	id, _ := uuid.Parse(req.ID)
	p, err := s.server.GetUserProfile(ctx.Request().Context(), id)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: UserProfile{
		User:        toUserDTO(p.User),
		DesignCount: p.DesignCount,
		MemberSince: p.MemberSince.UTC().Format(time.RFC3339),
	}})
}
