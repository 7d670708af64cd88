package handlers

import (
	"time"

	"househand/backend/internal/config"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Tasks         *TaskHandler
	Bids          *BidHandler
	Payments      *PaymentHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
	Health        *monitoring.HealthChecker
}

// NewRouter builds the gin engine with the full middleware chain and
// all routes mounted. Everything under /api requires a valid session.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", h.Health.Handler)
	router.GET("/metrics", monitoring.MetricsHandler)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware(cfg.Auth.JWTSecret))
	{
		api.POST("/auth/logout", h.Auth.Logout)

		api.POST("/tasks", middleware.RequireUserType(models.UserTypeClient), h.Tasks.CreateTask)
		api.GET("/tasks", h.Tasks.GetTasks)
		api.GET("/tasks/:id", h.Tasks.GetTaskByID)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateTaskStatus)

		api.POST("/tasks/:id/bids", middleware.RequireUserType(models.UserTypeHelper), h.Bids.SubmitBid)
		api.DELETE("/tasks/:id/bids/:bidID", middleware.RequireUserType(models.UserTypeHelper), h.Bids.WithdrawBid)
		api.POST("/tasks/:id/bids/:bidID/accept", middleware.RequireUserType(models.UserTypeClient), h.Bids.AcceptBid)
		api.POST("/tasks/:id/bids/:bidID/reject", middleware.RequireUserType(models.UserTypeClient), h.Bids.RejectBid)

		api.POST("/tasks/:id/payment", middleware.RequireUserType(models.UserTypeClient), h.Payments.RecordPayment)
		api.GET("/payments/unpaid", middleware.RequireUserType(models.UserTypeClient), h.Payments.ListUnpaidTasks)

		api.POST("/tasks/:id/review", middleware.RequireUserType(models.UserTypeClient), h.Reviews.CreateReview)
		api.GET("/helpers/:id/reviews", h.Reviews.GetHelperReviews)

		api.GET("/notifications", h.Notifications.ListNotifications)
	}

	return router
}
