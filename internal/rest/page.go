package rest

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"myShop/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
	Dialect() string
}

type PageHandler struct {
	health      HealthChecker
	appName     string
	environment string
}

func NewPageHandler(health HealthChecker, appName, environment string) *PageHandler {
	return &PageHandler{
		health:      health,
		appName:     appName,
		environment: environment,
	}
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s</h1>
<p>The shop API is running. Browse <a href="/api/products">/api/products</a> or check <a href="/status">/status</a>.</p>
</body>
</html>
`

func (h *PageHandler) Index(c echo.Context) error {
	name := html.EscapeString(h.appName)
	return c.HTML(http.StatusOK, fmt.Sprintf(indexPage, name, name))
}

// Status reports liveness and whether the store answers a ping.
func (h *PageHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.health.Ping(ctx); err != nil {
		logger.FromEcho(c).Warn("Database ping failed", zap.Error(err))
		database = "unavailable"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"database":    database,
		"dialect":     h.health.Dialect(),
		"environment": h.environment,
	})
}
