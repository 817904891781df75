package router

import (
	"net/http"

	"myShop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupPageRoutes(e *echo.Echo, handler *rest.PageHandler, metricsHandler http.Handler) {
	e.GET("/", handler.Index)
	e.GET("/status", handler.Status)
	e.GET("/metrics", echo.WrapHandler(metricsHandler))
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me, authRequired)
}

// Product creation is open; there is no admin role.
func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	api.GET("/categories", handler.GetAllCategories)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := api.Group("/cart", authRequired)

	cart.GET("", handler.GetCart)
	cart.POST("/add", handler.AddToCart)
	cart.DELETE("/remove/:item_id", handler.RemoveFromCart)
	cart.DELETE("", handler.ClearCart)
}

func SetOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetAllOrders)
	orders.GET("/:id", handler.GetOrderByID)
}
