package logger

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

const (
	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// Middleware assigns a request ID, stores a request-scoped logger in the
// fiber context and logs each completed request.
func Middleware(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		reqLogger := base.With(zap.String(requestIDKey, requestID))
		c.Locals(requestIDKey, requestID)
		c.Locals(loggerKey, reqLogger)

		err := c.Next()
		if err != nil {
			// Let the app's error handler write the response so the logged
			// status matches what the client sees.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		if isStaticPath(c.Path()) {
			return nil
		}

		status := c.Response().StatusCode()
		level := zapcore.InfoLevel
		if status >= 500 {
			level = zapcore.ErrorLevel
		} else if status >= 400 {
			level = zapcore.WarnLevel
		}

		reqLogger.Check(level, "http_request").Write(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("remote_addr", c.IP()),
		)
		return nil
	}
}

// FromCtx returns the request-scoped logger, or a no-op logger when the
// middleware did not run.
func FromCtx(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// RequestID returns the request ID assigned by the middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

func isStaticPath(path string) bool {
	return strings.HasPrefix(path, "/static") || strings.HasPrefix(path, "/assets")
}
