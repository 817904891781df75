package rest

import (
	"errors"
	"net/http"

	"myShop/domain"
	"myShop/pkg/logger"
	jsonres "myShop/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorStatus maps a service error to its HTTP status and envelope code.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "EMAIL_TAKEN"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeError(c echo.Context, err error) error {
	status, code := ErrorStatus(err)

	message := err.Error()
	switch {
	case status == http.StatusUnauthorized:
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		if errors.Is(err, domain.ErrUnauthorized) {
			message = domain.ErrUnauthorized.Error()
		}
	case status >= http.StatusInternalServerError:
		logger.FromEcho(c).Error("Request failed", zap.Error(err))
		message = "internal server error"
	}

	return c.JSON(status, jsonres.Error(code, message, nil))
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", message, nil))
}

// validationError lists the failing fields with the rule they broke.
func validationError(c echo.Context, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return badRequest(c, err.Error())
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}

	return c.JSON(http.StatusBadRequest, jsonres.Error("VALIDATION_ERROR", "invalid request", details))
}

func currentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok && id > 0
}
