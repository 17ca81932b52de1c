package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradeledger/internal/domain/dto"
	"github.com/guttosm/tradeledger/internal/logger"
)

// RequestLogger logs one "http_request" line per request once the chain
// has run.
//
// The line is written through the request-scoped logger installed by
// RequestID, so it carries request_id and whatever else the context logger
// holds. Fields: method, path, route (the matched pattern, empty when
// nothing matched), status, latency_ms and client_ip. The last error
// recorded with c.Error, if any, is attached as "error". Server errors are
// logged at error level and client errors at warn.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"warn","request_id":"123e4567-e89b-12d3-a456-426614174000","method":"POST","path":"/api/v1/reports/client-value","route":"/api/v1/reports/client-value","status":422,"latency_ms":15,"error":"malformed input at line 3 ..."}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		log := logger.FromContext(c.Request.Context())

		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		if last := c.Errors.Last(); last != nil {
			event = event.Err(last.Err)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// In-memory store for rate limiting, keyed by client IP.
// NOTE: a multi-instance deployment needs a shared store.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	rateLimiterLock sync.Mutex
)

// RateLimiter is a simple in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to perWindow requests per window (one minute); perWindow <= 0 disables limiting.
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests with a dto.ErrorResponse body.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60))
func RateLimiter(perWindow int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perWindow <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
		}
		exceeded := cl.count > perWindow
		rateLimiterLock.Unlock()

		if exceeded {
			AbortWithError(c, http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil), nil)
			return
		}

		c.Next()
	}
}

// resetRateLimiter clears all tracked clients.
func resetRateLimiter() {
	rateLimiterLock.Lock()
	defer rateLimiterLock.Unlock()
	clients = make(map[string]*client)
}
