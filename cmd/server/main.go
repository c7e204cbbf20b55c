package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "civdef-inventory-backend/internal/api/http"
	"civdef-inventory-backend/internal/config"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository/postgres"
	"civdef-inventory-backend/internal/security"
	"civdef-inventory-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting civil-defense inventory backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Stock policy", "enforce_stock_bounds", cfg.Inventory.EnforceStockBounds)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	inventorySvc := service.NewInventoryService(store.ItemRepository)
	requestSvc := service.NewRequestService(
		store.RequestRepository,
		store.ItemRepository,
		store.UserRepository,
		emailSvc,
		cfg.Inventory.EnforceStockBounds,
	)
	userSvc := service.NewUserService(store.UserRepository)
	assistantSvc := service.NewAssistantService(
		store.ItemRepository,
		cfg.Assistant.Endpoint,
		cfg.Assistant.Model,
		cfg.Assistant.APIKey,
	)

	// Initialize HTTP handlers and router
	authHandler := api.NewAuthHandler(authSvc)
	itemHandler := api.NewItemHandler(inventorySvc)
	requestHandler := api.NewRequestHandler(requestSvc)
	userHandler := api.NewUserHandler(userSvc)
	assistantHandler := api.NewAssistantHandler(assistantSvc)

	router := api.NewRouter(tokenManager, authHandler, itemHandler, requestHandler, userHandler, assistantHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
