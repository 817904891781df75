package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"myShop/app/echo-server/metrics"
	"myShop/app/echo-server/router"
	"myShop/business/cart"
	"myShop/business/category"
	"myShop/business/orders"
	"myShop/business/product"
	userService "myShop/business/user"
	"myShop/internal/middleware"
	psqlRepo "myShop/internal/repository/postgres"
	redisRepo "myShop/internal/repository/redis"
	"myShop/internal/rest"
	"myShop/pkg/config"
	"myShop/pkg/database"
	redisdb "myShop/pkg/database/redis"
	"myShop/pkg/logger"
	shopmetrics "myShop/pkg/metrics"
	"myShop/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.App.Environment, cfg.App.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Optional product cache
	var (
		productCache product.ProductCache
		ordersCache  orders.ProductCache
	)
	if cfg.Redis.Enabled() {
		client, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, product cache disabled", "error", err)
		} else {
			defer redisdb.CloseRedisClient(client)
			cache := redisRepo.NewProductCache(client, cfg.Redis.CacheTTL)
			productCache = cache
			ordersCache = cache
			logger.Info("Product cache enabled", "ttl", cfg.Redis.CacheTTL)
		}
	}

	// Init metrics
	shopmetrics.Init()
	httpMetrics, err := metrics.NewHTTPMetrics(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("Failed to register metrics", "error", err)
	}

	// Init validate
	validate := validator.New()
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.ExpiresIn)

	// Init repo
	transactor := psqlRepo.NewTransactor(db)
	userRepo := psqlRepo.NewUserRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	healthRepo := psqlRepo.NewHealthRepository(db)

	// Init service
	userService := userService.NewUserService(userRepo, validate, jwtManager)
	productService := product.NewProductService(productsRepo, productCache, cfg.Catalog.MaxPageLimit)
	categoryService := category.NewCategoryService(categoryRepo)
	cartService := cart.NewCartService(cartRepo, productsRepo)
	ordersService := orders.NewOrdersService(
		transactor, ordersRepo, productsRepo, cartRepo, ordersCache,
		orders.Options{AllowNegativeStock: cfg.Checkout.AllowNegativeStock},
	)

	// Init handler
	pageHandler := rest.NewPageHandler(healthRepo, cfg.App.Name, cfg.App.Environment)
	userHandler := rest.NewUserHandler(userService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	cartHandler := rest.NewCartHandler(cartService)
	ordersHandler := rest.NewOrdersHandler(ordersService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.ContextTimeout(cfg.Server.RequestTimeout))

	authRequired := middleware.AuthMiddleware(userService)

	// Setup routes
	router.SetupPageRoutes(e, pageHandler, metrics.Handler())
	api := e.Group("/api")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupCartRoutes(api, cartHandler, authRequired)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
