package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pantry-chef/internal/api/handlers/health"
	recipeHandler "pantry-chef/internal/api/handlers/recipe"
	"pantry-chef/internal/api/middleware"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/metrics"
	"pantry-chef/internal/pkg/common"
)

// base64 inflates uploads by a third; leave room for the JSON around the image.
const bodyOverhead = 64 << 10

// Dependencies are the services the routes need.
type Dependencies struct {
	Suggester recipeHandler.Suggester
	Images    recipeHandler.ImageDecoder
	Health    *health.Handler
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	maxBody := cfg.Image.MaxSizeBytes*4/3 + bodyOverhead
	router.Use(middleware.BodySizeLimit(maxBody))

	router.NoMethod(func(c *gin.Context) {
		middleware.AbortWithError(c, common.ErrMethodNotAllowed)
	})
	router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, common.ErrorResponse{Code: "NOT_FOUND", Message: "not found"})
	})

	router.GET("/health", deps.Health.HealthCheck)
	router.GET("/ready", deps.Health.ReadinessCheck)
	router.GET("/live", deps.Health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	suggestChain := []gin.HandlerFunc{}
	if cfg.RateLimit.Enabled {
		suggestChain = append(suggestChain, middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	suggestChain = append(suggestChain,
		middleware.Deduplication(cfg.DedupWindow),
		recipeHandler.NewHandler(deps.Suggester, deps.Images).HandleSuggest,
	)

	api := router.Group("/api/v1")
	{
		api.POST("/suggest", suggestChain...)
	}
	router.POST("/suggest", suggestChain...)

	common.LogInfo("router ready",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", maxBody),
	)
	return router
}
