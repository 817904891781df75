package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"myShop/domain"
	"myShop/pkg/logger"
	"myShop/pkg/metrics"

	"github.com/shopspring/decimal"
)

const DefaultPageLimit = 100

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindActive(ctx context.Context, offset, limit int) ([]domain.Product, error)
}

// ProductCache is optional; a nil cache sends every lookup to the repository.
type ProductCache interface {
	Get(ctx context.Context, id uint) (domain.Product, error)
	Set(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, ids ...uint) error
}

type productService struct {
	productRepo  ProductRepository
	cache        ProductCache
	maxPageLimit int
}

func NewProductService(productRepo ProductRepository, cache ProductCache, maxPageLimit int) *productService {
	if maxPageLimit <= 0 {
		maxPageLimit = DefaultPageLimit
	}
	return &productService{
		productRepo:  productRepo,
		cache:        cache,
		maxPageLimit: maxPageLimit,
	}
}

// GetAllProducts lists active products. limit 0 means the default page size
// and anything above the configured maximum is clamped to it.
func (s *productService) GetAllProducts(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must not be negative", domain.ErrValidation)
	}

	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > s.maxPageLimit {
		limit = s.maxPageLimit
	}

	products, err := s.productRepo.FindActive(ctx, skip, limit)
	if err != nil {
		logger.Error("Failed to find all product", "error", err)
		return nil, err
	}

	return products, nil
}

// GetProductByID does not filter on the active flag.
func (s *productService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	if id == 0 {
		return nil, domain.ErrProductNotFound
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product by id")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		switch {
		case err == nil:
			metrics.ProductCacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			metrics.ProductCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.ProductCacheLookups.WithLabelValues("error").Inc()
			logger.Warn("Product cache read failed", "product_id", id, "error", err)
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("failed to find product by id", "product_id", id, "error", err)
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logger.Warn("Product cache write failed", "product_id", id, "error", err)
		}
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}

	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	product.Price = decimal.NewFromFloat(product.Price).Round(2).InexactFloat64()

	if product.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", domain.ErrValidation)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx, product.ID)
	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *productService) invalidate(ctx context.Context, ids ...uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		logger.Warn("Product cache invalidation failed", "product_ids", ids, "error", err)
	}
}
