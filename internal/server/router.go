package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/handlers"
	"github.com/inoxmetalart/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ProductHandler     *handlers.ProductHandler
	GalleryHandler     *handlers.GalleryHandler
	ProjectHandler     *handlers.ProjectHandler
	MaterialHandler    *handlers.MaterialHandler
	ApplicationHandler *handlers.ApplicationHandler
	TelegramHandler    *handlers.TelegramHandler
	CORSAllowOrigins   []string
	UploadRoot         string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Cors
	origins := cfg.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Stored files are served under the same relative paths the API returns.
	if cfg.UploadRoot != "" {
		router.Static("/"+strings.Trim(cfg.UploadRoot, "/"), cfg.UploadRoot)
	}

	api := router.Group("/api/v1")

	// ===============
	// || Public    ||
	// ===============
	api.POST("/auth/register", cfg.AuthHandler.Register)
	api.POST("/auth/login", cfg.AuthHandler.Login)

	api.GET("/products", cfg.ProductHandler.List)
	api.GET("/products/categories", cfg.ProductHandler.Categories)
	api.GET("/products/:id", cfg.ProductHandler.Get)

	api.GET("/gallery", cfg.GalleryHandler.List)
	api.GET("/gallery/categories", cfg.GalleryHandler.Categories)
	api.GET("/gallery/:id", cfg.GalleryHandler.Get)

	api.GET("/projects", cfg.ProjectHandler.List)
	api.GET("/projects/categories", cfg.ProjectHandler.Categories)
	api.GET("/projects/:id", cfg.ProjectHandler.Get)

	api.GET("/materials", cfg.MaterialHandler.List)
	api.GET("/materials/categories", cfg.MaterialHandler.Categories)
	api.GET("/materials/:id", cfg.MaterialHandler.Get)
	api.POST("/materials/:id/download", cfg.MaterialHandler.Download)

	api.POST("/applications", cfg.ApplicationHandler.Create)

	if cfg.TelegramHandler != nil {
		api.POST("/telegram/send-application", cfg.TelegramHandler.SendApplication)
		api.GET("/telegram/test", cfg.TelegramHandler.Test)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/auth/me", cfg.AuthHandler.Me)
	protected.GET("/auth/check", cfg.AuthHandler.Check)

	protected.POST("/products", cfg.ProductHandler.Create)
	protected.PUT("/products/:id", cfg.ProductHandler.Update)
	protected.DELETE("/products/:id", cfg.ProductHandler.Delete)
	protected.POST("/products/upload-image", cfg.ProductHandler.UploadImage)
	protected.POST("/products/:id/upload-video", cfg.ProductHandler.UploadVideo)

	protected.POST("/gallery", cfg.GalleryHandler.Create)
	protected.PUT("/gallery/:id", cfg.GalleryHandler.Update)
	protected.DELETE("/gallery/:id", cfg.GalleryHandler.Delete)

	protected.POST("/projects", cfg.ProjectHandler.Create)
	protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
	protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)

	protected.POST("/materials", cfg.MaterialHandler.Create)
	protected.PUT("/materials/:id", cfg.MaterialHandler.Update)
	protected.DELETE("/materials/:id", cfg.MaterialHandler.Delete)
	protected.POST("/materials/upload-file", cfg.MaterialHandler.UploadFile)

	protected.GET("/applications", cfg.ApplicationHandler.List)
	protected.GET("/applications/:id", cfg.ApplicationHandler.Get)
	protected.PUT("/applications/:id", cfg.ApplicationHandler.Update)
	protected.DELETE("/applications/:id", cfg.ApplicationHandler.Delete)

	return router
}
