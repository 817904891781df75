package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myShop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrderFromCart(ctx context.Context, userID uint, shippingAddress string) (domain.Order, error)
		GetAllOrders(ctx context.Context, userID uint) ([]domain.Order, error)
		GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error)
	}

	// OrdersInput is optional; an empty body places the order without an address.
	OrdersInput struct {
		ShippingAddress string `json:"shipping_address" validate:"omitempty,max=500"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	var request OrdersInput
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&request); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	if err := h.validate.Struct(&request); err != nil {
		return validationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrderFromCart(ctx, userID, request.ShippingAddress)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.ordersService.GetAllOrders(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(orderID), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
