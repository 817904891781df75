package middleware

import (
	"myShop/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestID propagates X-Request-ID, generating one when absent, and tags the
// request logger with it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("request_id", id)
			logger.Attach(c, logger.L().With(zap.String("request_id", id)))

			return next(c)
		}
	}
}
