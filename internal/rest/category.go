package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]string, error)
}

type CategoryHandler struct {
	categoryService CategoryService
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		timeout:         10 * time.Second,
	}
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get all categories",
		"categories": categories,
	})
}
