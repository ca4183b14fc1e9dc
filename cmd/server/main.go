package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inoxmetalart/backend/internal/db"
	"github.com/inoxmetalart/backend/internal/handlers"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/middleware"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/server"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	port := utils.GetEnv("PORT", "8000", log)
	corsOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",")
	if len(corsOrigins) == 1 && corsOrigins[0] == "" {
		corsOrigins = nil
	}

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := databaseService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Storage
	storageService := services.NewStorageService(log, uploadDir)
	if err := storageService.Init(); err != nil {
		log.Error("Could not create upload directories", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	productRepo := repos.NewProductRepo(theDB, log)
	galleryRepo := repos.NewGalleryRepo(theDB, log)
	projectRepo := repos.NewProjectRepo(theDB, log)
	materialRepo := repos.NewMaterialRepo(theDB, log)
	applicationRepo := repos.NewApplicationRepo(theDB, log)

	// Services
	log.Info("Setting up Services from main...")
	var telegramService *services.TelegramService
	if tg, err := services.NewTelegramService(log, services.TelegramConfigFromEnv(log)); err != nil {
		log.Warn("Telegram notifications disabled", "error", err)
	} else {
		telegramService = tg
	}
	var emailService *services.EmailService
	if em, err := services.NewEmailService(log, services.EmailConfigFromEnv(log)); err != nil {
		log.Warn("Email notifications disabled", "error", err)
	} else {
		emailService = em
	}

	authService := services.NewAuthService(theDB, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	productService := services.NewProductService(theDB, log, productRepo, storageService)
	galleryService := services.NewGalleryService(theDB, log, galleryRepo, storageService)
	projectService := services.NewProjectService(theDB, log, projectRepo, storageService)
	materialService := services.NewMaterialService(theDB, log, materialRepo, storageService)
	applicationService := services.NewApplicationService(theDB, log, applicationRepo, storageService, telegramService, emailService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(log, productService)
	galleryHandler := handlers.NewGalleryHandler(log, galleryService)
	projectHandler := handlers.NewProjectHandler(log, projectService)
	materialHandler := handlers.NewMaterialHandler(log, materialService)
	applicationHandler := handlers.NewApplicationHandler(log, applicationService)
	var telegramHandler *handlers.TelegramHandler
	if telegramService != nil {
		telegramHandler = handlers.NewTelegramHandler(log, telegramService)
	}

	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		ProductHandler:     productHandler,
		GalleryHandler:     galleryHandler,
		ProjectHandler:     projectHandler,
		MaterialHandler:    materialHandler,
		ApplicationHandler: applicationHandler,
		TelegramHandler:    telegramHandler,
		CORSAllowOrigins:   corsOrigins,
		UploadRoot:         uploadDir,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
