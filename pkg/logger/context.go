package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const echoLoggerKey = "logger"

// FromEcho returns the request-scoped logger, falling back to the process one.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoLoggerKey).(*zap.Logger); ok {
		return l
	}
	return L()
}

// Attach stores a request-scoped logger on the echo context.
func Attach(c echo.Context, l *zap.Logger) {
	c.Set(echoLoggerKey, l)
}

// Middleware writes one structured line per request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			FromEcho(c).Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return nil
		}
	}
}
