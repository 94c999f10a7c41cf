package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "freelanceflow/docs"
	"freelanceflow/internal/auth"
	"freelanceflow/internal/config"
	"freelanceflow/internal/handlers"
	applog "freelanceflow/internal/logger"
	"freelanceflow/internal/middleware"
	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
	"freelanceflow/internal/storage"
)

// @title FreelanceFlow API
// @version 1.0
// @description Project, task, proposal and invoice management for freelance teams
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := applog.New()
	defer logger.Sync()

	cfg := initConfig(logger)
	db := connectDatabase(cfg, logger)
	migrateDatabase(db, logger)
	minioClient := initMinIOClient(cfg, logger)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMins)*time.Minute)
	revocation := auth.NewRevocationStore(cfg.RedisAddr, cfg.RedisPassword)
	if revocation == nil {
		logger.Warn("REDIS_ADDR not set, token revocation disabled")
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	authService := services.NewAuthService(userRepo, tokens, revocation, logger)
	userService := services.NewUserService(userRepo, logger)
	projectService := services.NewProjectService(projectRepo, userRepo, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, logger)
	proposalService := services.NewProposalService(proposalRepo, userRepo, logger)
	invoiceService := services.NewInvoiceService(invoiceRepo, projectRepo, userRepo, logger)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, userRepo, proposalRepo, invoiceRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, projectRepo, minioClient, cfg.MinioBucket, logger)

	app := fiber.New()
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authMW := middleware.NewAuthMiddleware(tokens, revocation, userRepo, logger)

	authHandler := handlers.NewAuthHandler(authService, userService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	projectHandler := handlers.NewProjectHandler(projectService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	proposalHandler := handlers.NewProposalHandler(proposalService, logger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService, logger)

	api := app.Group("/api")

	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authMW.RequireAuth(), authHandler.Logout)
	api.Get("/auth/me", authMW.RequireAuth(), authHandler.Me)

	protected := api.Group("", authMW.RequireAuth())

	protected.Get("/dashboard", dashboardHandler.GetDashboard)

	protected.Get("/users", userHandler.ListUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", userHandler.CreateUser)
	protected.Put("/users/:id", userHandler.UpdateUser)
	protected.Delete("/users/:id", userHandler.DeleteUser)

	protected.Get("/projects", projectHandler.ListProjects)
	protected.Get("/projects/:id", projectHandler.GetProject)
	protected.Post("/projects", projectHandler.CreateProject)
	protected.Put("/projects/:id", projectHandler.UpdateProject)
	protected.Delete("/projects/:id", projectHandler.DeleteProject)
	protected.Get("/projects/:id/attachments", attachmentHandler.ListAttachments)
	protected.Post("/projects/:id/attachments", attachmentHandler.UploadAttachment)

	protected.Get("/tasks", taskHandler.ListTasks)
	protected.Get("/tasks/:id", taskHandler.GetTask)
	protected.Post("/tasks", taskHandler.CreateTask)
	protected.Put("/tasks/:id", taskHandler.UpdateTask)
	protected.Delete("/tasks/:id", taskHandler.DeleteTask)

	protected.Get("/proposals", proposalHandler.ListProposals)
	protected.Get("/proposals/:id", proposalHandler.GetProposal)
	protected.Post("/proposals", proposalHandler.CreateProposal)
	protected.Put("/proposals/:id", proposalHandler.UpdateProposal)
	protected.Delete("/proposals/:id", proposalHandler.DeleteProposal)

	protected.Get("/invoices", invoiceHandler.ListInvoices)
	protected.Get("/invoices/:id", invoiceHandler.GetInvoice)
	protected.Post("/invoices", invoiceHandler.CreateInvoice)
	protected.Put("/invoices/:id", invoiceHandler.UpdateInvoice)
	protected.Delete("/invoices/:id", invoiceHandler.DeleteInvoice)

	protected.Get("/attachments/:id/download", attachmentHandler.DownloadAttachment)
	protected.Delete("/attachments/:id", attachmentHandler.DeleteAttachment)

	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		logger.Info("defaulting port", zap.String("port", port))
	}
	logger.Info("server listening", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func initConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}
	return cfg
}

func connectDatabase(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	return db
}

func migrateDatabase(db *gorm.DB, logger *zap.Logger) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Proposal{},
		&models.Invoice{},
		&models.Attachment{},
	)
	if err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
}

func initMinIOClient(cfg *config.Config, logger *zap.Logger) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg, logger)
	if err != nil {
		logger.Fatal("minio client initialization failed", zap.Error(err))
	}
	return minioClient
}
