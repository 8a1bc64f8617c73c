package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/designpro/designpro/internal/usecase"
)

// errJSON maps application errors onto the response contract:
// validation 422, not found 404, conflict 409, store down 503,
// anything else 500.
func errJSON(ctx echo.Context, err error) error {
	var ve usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return ctx.JSON(422, Res{Error: ve.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		return ctx.JSON(404, Res{Error: err.Error()})
	case errors.Is(err, usecase.ErrConflict):
		return ctx.JSON(409, Res{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnavailable):
		return ctx.JSON(503, Res{Error: err.Error()})
	default:
		return ctx.JSON(500, Res{Error: err.Error()})
	}
}
