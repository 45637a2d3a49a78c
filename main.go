package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tilakWebkorps/Healthy-meal/api"
	"github.com/tilakWebkorps/Healthy-meal/config"
	"github.com/tilakWebkorps/Healthy-meal/database"
	"github.com/tilakWebkorps/Healthy-meal/middleware"
	"github.com/tilakWebkorps/Healthy-meal/repository"
	"github.com/tilakWebkorps/Healthy-meal/services"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("FATAL: [Main] Failed to migrate database: %v", err)
	}

	// Optional redis connection for session revocation
	rdb, err := database.ConnectRedis()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to connect to redis: %v", err)
	}

	// Initialize repositories
	planRepo := repository.NewPlanRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	userRepo := repository.NewUserRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize services
	tokenTTL := time.Duration(config.AppConfig.Auth.TokenTTLHours) * time.Hour
	scheduleService := services.NewScheduleService(planRepo, recipeRepo)
	purchaseService := services.NewPurchaseService(userRepo)
	sessionService := services.NewSessionService(userRepo, rdb, config.AppConfig.Auth.JWTSecret, tokenTTL)
	presenter := services.NewPresenter(config.AppConfig.Server.BaseURL)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API handler with all dependencies
	apiHandler := api.NewAPIHandler(planRepo, scheduleService, purchaseService, sessionService, presenter)

	// Set up router
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Cors())
	router.Use(gin.Recovery())
	apiHandler.RegisterRoutes(router)

	port := config.AppConfig.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s.", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("FATAL: [Main] Failed to start server: %v", err)
	}
}
