package v1

import (
	"net/http"
	"time"

	"go-mockinterview-backend/config"
	"go-mockinterview-backend/internal/delivery/http/middleware"
	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	InterviewUC  domain.InterviewUsecase
	GenerationUC domain.GenerationUsecase
	FeedbackUC   domain.FeedbackUsecase
	SessionUC    domain.SessionUsecase
	ProgressUC   domain.ProgressUsecase
	BillingUC    domain.BillingUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth endpoints carry their own strict limit
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))

	// Model-backed routes get a tighter per-user limit on top of auth
	generateLimited := protected.Group("")
	generateLimited.Use(middleware.RateLimitMiddleware(middleware.GenerateRateLimitConfig(deps.Config.RateLimitGenerateThreshold, window)))

	{
		NewAuthHandler(public, protected, deps.AuthUC)
		NewInterviewHandler(protected, generateLimited, deps.InterviewUC, deps.GenerationUC, deps.FeedbackUC)
		NewSessionHandler(protected, deps.SessionUC)
		NewProfileHandler(protected, deps.ProgressUC, deps.InterviewUC)
		NewBillingHandler(protected, deps.BillingUC)
	}

	return r
}
