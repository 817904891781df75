package middleware

import (
	"errors"
	"net/http"

	"myShop/pkg/logger"
	jsonres "myShop/pkg/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape handlers (unknown routes, bad
// methods, panics caught by Recover) in the shared error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.FromEcho(c).Error("Unhandled error", zap.Error(err))
	}

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(status)
	} else {
		respErr = c.JSON(status, jsonres.Error(codeFor(status), message, nil))
	}
	if respErr != nil {
		logger.FromEcho(c).Error("Failed to write error response", zap.Error(respErr))
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestTimeout, http.StatusServiceUnavailable:
		return "TIMEOUT"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}
