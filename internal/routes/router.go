package routes

import (
	"net/http"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/delivery/http/handler"
	"tour-booking-api/internal/infrastructure/database/postgres"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/mail"
	"tour-booking-api/internal/middleware"
	"tour-booking-api/internal/usecase/auth"
	"tour-booking-api/internal/usecase/tour"
	"tour-booking-api/internal/usecase/user"
	"tour-booking-api/pkg/token"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, mailer mail.Mailer) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ErrorHandler(cfg.Server.Environment))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "service is running",
		})
	})

	tokens := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry())

	userRepository := postgres.NewUserRepository(db)
	tourRepository := postgres.NewTourRepository(db)

	authService := auth.NewService(userRepository, tokens, mailer, cfg.Auth.PasswordResetExpiry())
	authHandler := handler.NewAuthHandler(authService)

	userService := user.NewService(userRepository)
	userHandler := handler.NewUserHandler(userService)

	tourService := tour.NewService(tourRepository)
	tourHandler := handler.NewTourHandler(tourService)

	v1 := router.Group("/api/v1")
	{
		tourHandler.RegisterRoutes(v1)

		users := v1.Group("/users")
		users.Use(middleware.RateLimitMiddleware(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst))
		{
			authHandler.RegisterRoutes(users)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(tokens, userRepository))
		{
			protectedUsers := protected.Group("/users")
			{
				authHandler.RegisterProtectedRoutes(protectedUsers)
				userHandler.RegisterProtectedRoutes(protectedUsers)
			}

			managers := protected.Group("")
			managers.Use(middleware.TourManagersOnly())
			{
				tourHandler.RegisterManagementRoutes(managers)
			}

			admin := protected.Group("/users")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
