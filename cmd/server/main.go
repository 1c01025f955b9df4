package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/architect/math-prep/internal/common/database"
	commonhandlers "github.com/architect/math-prep/internal/common/handlers"
	"github.com/architect/math-prep/internal/common/health"
	"github.com/architect/math-prep/internal/common/middleware"
	practiceHandlers "github.com/architect/math-prep/internal/practice/handlers"
	progressHandlers "github.com/architect/math-prep/internal/progress/handlers"
	progressServices "github.com/architect/math-prep/internal/progress/services"
	"github.com/architect/math-prep/internal/progress/thresholds"
	"github.com/architect/math-prep/pkg/config"
	"github.com/architect/math-prep/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (SQLite for development, PostgreSQL for production)
	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Install the configured topic-strength policy
	progressServices.SetPolicy(thresholds.FromConfig(cfg.Thresholds))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin engine
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.UserIdentity(cfg.User.ID))

	// Health check endpoints
	healthHandler := commonhandlers.NewHealthHandler(health.NewChecker())
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/attempts", practiceHandlers.SubmitAttempt)
		v1.GET("/attempts", practiceHandlers.GetAttempts)

		v1.GET("/questions", practiceHandlers.GetQuestions)
		v1.POST("/questions", practiceHandlers.CreateQuestion)
		v1.GET("/questions/:id", practiceHandlers.GetQuestion)
		v1.PUT("/questions/:id", practiceHandlers.UpdateQuestion)
		v1.DELETE("/questions/:id", practiceHandlers.DeleteQuestion)

		v1.GET("/sessions", practiceHandlers.GetSessions)
		v1.POST("/sessions", practiceHandlers.StartSession)
		v1.PUT("/sessions/:id/complete", practiceHandlers.CompleteSession)

		v1.GET("/progress", progressHandlers.GetProgress)
		v1.GET("/progress/daily", progressHandlers.GetDailyProgress)
		v1.GET("/progress/weekly", progressHandlers.GetWeeklyAnalysis)
		v1.GET("/progress/topics", progressHandlers.GetTopicPerformance)

		v1.GET("/achievements", progressHandlers.GetAchievements)
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting math-prep server",
		zap.String("address", address),
		zap.String("env", cfg.Server.Env),
		zap.String("db_type", cfg.Database.Type),
	)

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
