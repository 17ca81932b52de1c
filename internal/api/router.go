package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tradeledger/internal/instrumentation"
	"github.com/guttosm/tradeledger/internal/middleware"
)

const defaultRequestTimeout = 30 * time.Second

// RouterOptions tunes the cross-cutting behavior of the router.
type RouterOptions struct {
	RateLimitPerMinute int                      // <= 0 disables rate limiting
	RequestTimeout     time.Duration            // <= 0 uses 30s
	Metrics            *instrumentation.Metrics // nil disables HTTP metrics
	Gatherer           prometheus.Gatherer      // served at /metrics; nil uses the default registry
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Metrics).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 report routes (/api/v1/reports/...) for GET and POST.
//   - Keeps the short legacy paths (/, /get_daily_summary, /get_management_report, /get_anomalies).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute),
	)
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	// ─── Timeout ──────────────────────────────────
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger & metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ─── API v1 ───────────────────────────────────
	routes := map[string]gin.HandlerFunc{
		"/client-summary": handler.ClientSummary,
		"/daily-summary":  handler.DailySummary,
		"/management":     handler.ManagementReport,
		"/anomalies":      handler.Anomalies,
		"/full":           handler.FullReport,
	}
	reports := router.Group("/api/v1/reports")
	for path, h := range routes {
		reports.GET(path, h)
		reports.POST(path, h)
	}

	// ─── Legacy paths ─────────────────────────────
	legacy := map[string]gin.HandlerFunc{
		"/":                      handler.ClientSummary,
		"/get_daily_summary":     handler.DailySummary,
		"/get_management_report": handler.ManagementReport,
		"/get_anomalies":         handler.Anomalies,
	}
	for path, h := range legacy {
		router.GET(path, h)
		router.POST(path, h)
	}

	return router
}
