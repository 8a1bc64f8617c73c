package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(otelecho.Middleware("designpro-api", otelecho.WithSkipper(skipper)))
	e.Use(NewEchoLogger(s.logger))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api", s.RootHandler)

	e.GET("/api/health", s.healthHandler)

	var templateGroup = e.Group("/api/v1/templates")
	templateGroup.GET("", s.ListTemplates)
	templateGroup.POST("", s.CreateTemplate)
	templateGroup.GET("/categories/list", s.ListTemplateCategories)
	templateGroup.GET("/stats/summary", s.GetTemplateStats)
	templateGroup.GET("/:id", s.GetTemplateByID)
	templateGroup.PUT("/:id", s.UpdateTemplate)
	templateGroup.DELETE("/:id", s.DeleteTemplate)

	var designGroup = e.Group("/api/v1/designs")
	designGroup.GET("", s.ListDesigns)
	designGroup.POST("", s.CreateDesign)
	designGroup.GET("/user/:user_id/stats", s.GetUserDesignStats)
	designGroup.GET("/:id", s.GetDesignByID)
	designGroup.PUT("/:id", s.UpdateDesign)
	designGroup.DELETE("/:id", s.DeleteDesign)
	designGroup.POST("/:id/duplicate", s.DuplicateDesign)
	designGroup.PATCH("/:id/favorite", s.ToggleDesignFavorite)

	var userGroup = e.Group("/api/v1/users")
	userGroup.GET("", s.ListUsers)
	userGroup.POST("", s.CreateUser)
	userGroup.GET("/:id", s.GetUserByID)
	userGroup.PUT("/:id", s.UpdateUser)
	userGroup.DELETE("/:id", s.DeleteUser)
	userGroup.GET("/:id/profile", s.GetUserProfile)

	var exportGroup = e.Group("/api/v1/export")
	exportGroup.GET("/formats", s.ListExportFormats)
	exportGroup.POST("/design/:id", s.ExportDesign)
	exportGroup.POST("/design/:id/base64", s.ExportDesignBase64)
	exportGroup.GET("/design/:id/qr", s.DesignShareQR)
	exportGroup.POST("/batch", s.BatchExportDesigns)
	exportGroup.POST("/jobs", s.CreateExportJob)
	exportGroup.GET("/jobs/:id", s.GetExportJobByID)

	var uploadGroup = e.Group("/api/v1/upload")
	uploadGroup.POST("/image", s.UploadImage)
	uploadGroup.POST("/images", s.UploadImages)
	uploadGroup.GET("/info", s.GetUploadInfo)
	uploadGroup.GET("/url", s.GetTempUploadURL)
	uploadGroup.DELETE("/image/:id", s.DeleteUploadedImage)

	return e
}
