package server

import "github.com/labstack/echo/v4"

func (s *Server) RootHandler(ctx echo.Context) error {
	return ctx.JSON(200, map[string]string{
		"service": "DesignPro API",
		"version": "1.0.0",
		"docs":    "/api/health",
	})
}

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}
