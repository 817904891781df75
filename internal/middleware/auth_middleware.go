package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"myShop/domain"
	"myShop/pkg/logger"
	jsonres "myShop/pkg/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenValidator resolves a bearer token to the user it was issued for.
type TokenValidator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

func unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", message, nil))
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller under "user" and "user_id".
func AuthMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "Missing authorization header")
			}

			tokenParts := strings.Fields(authHeader)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
				return unauthorized(c, "Invalid authorization format")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			user, err := validator.Authenticate(ctx, tokenParts[1])
			if err != nil {
				logger.FromEcho(c).Debug("Token rejected", zap.Error(err))
				return unauthorized(c, domain.ErrUnauthorized.Error())
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			logger.Attach(c, logger.FromEcho(c).With(zap.Uint("user_id", user.ID)))

			return next(c)
		}
	}
}
