package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tickerpulse/internal/middleware"
)

// RouterOptions carries the server settings the router applies.
type RouterOptions struct {
	RequestTimeout time.Duration
	RateLimit      int // requests per minute per client IP; 0 disables
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Applies the per-request timeout to the request context.
//   - Mounts Swagger docs (/swagger/*any), the HTML dashboard (/) and API v1 (/api/v1).
//
// Health and readiness endpoints are registered by app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 20 * time.Second
	}
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimit, time.Minute),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Dashboard ────────────────────────────────
	router.GET("/", handler.Dashboard)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/presets", handler.GetPresets)
		v1.GET("/compare", handler.GetCompare)
		v1.GET("/yearly", handler.GetYearly)
		v1.GET("/head-to-head", handler.GetHeadToHead)

		charts := v1.Group("/charts")
		charts.GET("/closing.png", handler.GetClosingChart)
		charts.GET("/normalized.png", handler.GetNormalizedChart)
		charts.GET("/head-to-head.png", handler.GetHeadToHeadChart)
	}

	return router
}
