package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myShop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CartService interface {
	GetCart(ctx context.Context, userID uint) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type CartHandler struct {
	cartService CartService
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		timeout:     10 * time.Second,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// AddToCart reads product_id and quantity (default 1) from the query string.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	productID, err := strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	if err != nil || productID == 0 {
		return badRequest(c, "product_id is required")
	}

	quantity := 1
	if raw := c.QueryParam("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "quantity must be an integer")
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.AddToCart(ctx, userID, uint(productID), quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveFromCart(ctx, userID, uint(itemID)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Item removed from cart"))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart cleared"))
}
