package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-mockinterview-backend/config"
	_ "go-mockinterview-backend/docs" // Important for Swagger
	v1 "go-mockinterview-backend/internal/delivery/http/v1"
	"go-mockinterview-backend/internal/repository/postgres"
	"go-mockinterview-backend/internal/usecase"
	"go-mockinterview-backend/pkg/database"
	"go-mockinterview-backend/pkg/genai"
	"go-mockinterview-backend/pkg/logger"
	"go-mockinterview-backend/pkg/payment"
	"go-mockinterview-backend/pkg/redis"
	"go-mockinterview-backend/pkg/security"
)

// @title           Mock Interview Backend API
// @version         1.0
// @description     Backend for an interview practice platform using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting mock interview backend", "port", cfg.Port)

	environment := "development"
	if os.Getenv("GIN_MODE") == "release" {
		environment = "production"
	}
	secLogger := security.InitSecurityLogger("mockinterview-api", environment)
	defer secLogger.Sync()

	// 3. Setup Redis (rate limiting and login tracking degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	defer redis.Close()

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	feedbackRepo := postgres.NewFeedbackRepository(dbPool)

	// 6. Setup External Clients
	generator := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	checkoutClient := payment.NewClient(cfg.StripeSecretKey, "")
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	})

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, loginTracker, cfg.JWTSecret, time.Duration(cfg.SessionDurationHrs)*time.Hour)
	generationUC := usecase.NewGenerationUsecase(generator)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, feedbackRepo)
	feedbackUC := usecase.NewFeedbackUsecase(feedbackRepo, generator)
	sessionUC := usecase.NewSessionUsecase(feedbackUC)
	progressUC := usecase.NewProgressUsecase(feedbackRepo)
	billingUC := usecase.NewBillingUsecase(checkoutClient, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		InterviewUC:  interviewUC,
		GenerationUC: generationUC,
		FeedbackUC:   feedbackUC,
		SessionUC:    sessionUC,
		ProgressUC:   progressUC,
		BillingUC:    billingUC,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
