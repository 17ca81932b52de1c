package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradeledger/internal/domain/dto"
	"github.com/guttosm/tradeledger/internal/logger"
)

// errPanic is recorded on the context in place of the panic value, which may
// hold ledger data and is only written to the log.
var errPanic = errors.New("handler panicked")

// RecoveryMiddleware turns a panic in a later handler into a 500.
//
// The panic value and stack go to the request-scoped logger, so the line
// carries request_id. The client gets a generic dto.ErrorResponse; the panic
// value never leaves the process. A handler that already wrote its status
// keeps it.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			logger.FromContext(c.Request.Context()).Error().
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Str("path", c.Request.URL.Path).
				Msg("panic recovered")

			if c.Writer.Written() {
				_ = c.Error(errPanic)
				c.Abort()
				return
			}
			AbortWithError(c, http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil), errPanic)
		}()

		c.Next()
	}
}
