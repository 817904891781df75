package cart

import (
	"context"
	"fmt"

	"myShop/domain"
	"myShop/pkg/logger"
	"myShop/pkg/metrics"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	Upsert(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error)
	Delete(ctx context.Context, itemID, userID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type CartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", "user_id", userID, "error", err)
		return nil, err
	}

	return items, nil
}

// AddToCart adds quantity to the user's line for productID, creating it if
// needed. Active flag and stock are checked at checkout, not here.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return domain.CartItem{}, err
	}

	item, err := s.cartRepo.Upsert(ctx, userID, productID, quantity)
	if err != nil {
		logger.Error("Failed to add to cart", "user_id", userID, "product_id", productID, "error", err)
		return domain.CartItem{}, err
	}

	metrics.CartAdds.Inc()

	return item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	return s.cartRepo.Delete(ctx, itemID, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		logger.Error("Failed to clear cart", "user_id", userID, "error", err)
		return err
	}

	return nil
}
