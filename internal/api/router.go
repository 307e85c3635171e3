package api

import (
	"github.com/arlo/tweetsmith/internal/api/handler"
	"github.com/arlo/tweetsmith/internal/api/middleware"
	"github.com/arlo/tweetsmith/internal/auth"
	"github.com/arlo/tweetsmith/internal/config"
	"github.com/arlo/tweetsmith/internal/logger"
	"github.com/arlo/tweetsmith/internal/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	tweetService *service.TweetService,
	tokens *auth.TokenManager,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	tweetHandler := handler.NewTweetHandler(tweetService)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		tweets := v1.Group("/tweets")

		// History listing tolerates anonymous callers and returns an
		// empty list for them
		tweets.GET("", auth.OptionalAuth(tokens), tweetHandler.List)

		authed := tweets.Group("")
		authed.Use(auth.RequireAuth(tokens))
		{
			authed.POST("/generate", tweetHandler.Generate)
			authed.POST("/improve", tweetHandler.Improve)
			authed.POST("/:id/favorite", tweetHandler.ToggleFavorite)
			authed.DELETE("/:id", tweetHandler.Delete)
		}
	}

	return r
}
