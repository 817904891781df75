package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myShop/domain"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, skip, limit int) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	ImageURL      string   `json:"image_url" validate:"omitempty,max=2048"`
	Category      string   `json:"category" validate:"omitempty,max=100"`
	IsActive      *bool    `json:"is_active"`
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return badRequest(c, "skip must be an integer")
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return badRequest(c, "limit must be an integer")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx, skip, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productId, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, uint(productId))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return validationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.productService.CreateProduct(ctx, &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		IsActive:      isActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "product created successfully",
		"product": product,
	})
}
