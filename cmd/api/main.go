package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"opticare-backend/internal/application/service"
	"opticare-backend/internal/config"
	"opticare-backend/internal/infrastructure/database"
	"opticare-backend/internal/infrastructure/repository"
	"opticare-backend/internal/presentation/http/handler"
	"opticare-backend/internal/presentation/http/routes"
	"opticare-backend/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	orderPaymentRepo := repository.NewOrderPaymentRepository(db)
	historyRepo := repository.NewCustomerHistoryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	numberGen := service.NewNumberGenerator(orderRepo, prescriptionRepo, cfg.Numbering)
	authService := service.NewAuthService(userRepo, jwtManager)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, numberGen)
	historyService := service.NewHistoryService(historyRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, orderPaymentRepo, prescriptionRepo, historyService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Prescription: handler.NewPrescriptionHandler(prescriptionService),
		Order:        handler.NewOrderHandler(orderService, numberGen),
		History:      handler.NewHistoryHandler(historyService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
