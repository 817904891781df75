package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"myShop/domain"
	"myShop/pkg/logger"
	"myShop/pkg/metrics"

	"github.com/shopspring/decimal"
)

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItem(ctx context.Context, item *domain.OrderItem) error
	FindByID(ctx context.Context, orderID, userID uint) (domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Product, error)
	DecrementStock(ctx context.Context, id uint, quantity int) error
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductCache is invalidated for every product whose stock changed.
type ProductCache interface {
	Delete(ctx context.Context, ids ...uint) error
}

type Options struct {
	AllowNegativeStock bool
}

type OrdersService struct {
	tx           Transactor
	orderRepo    OrdersRepository
	productsRepo ProductRepository
	cartRepo     CartRepository
	cache        ProductCache
	opts         Options
}

func NewOrdersService(
	tx Transactor,
	orderRepo OrdersRepository,
	productsRepo ProductRepository,
	cartRepo CartRepository,
	cache ProductCache,
	opts Options,
) *OrdersService {
	return &OrdersService{
		tx:           tx,
		orderRepo:    orderRepo,
		productsRepo: productsRepo,
		cartRepo:     cartRepo,
		cache:        cache,
		opts:         opts,
	}
}

// CreateOrderFromCart turns the user's cart into a pending order in one
// transaction: order row, item snapshots, stock decrements, cart clear.
// Nothing is persisted when any step fails.
func (s *OrdersService) CreateOrderFromCart(ctx context.Context, userID uint, shippingAddress string) (domain.Order, error) {
	var (
		order      domain.Order
		productIDs []uint
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.cartRepo.FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		// lock rows in a fixed order so concurrent checkouts cannot deadlock
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

		prices := make([]float64, len(lines))
		total := decimal.Zero
		for i, line := range lines {
			product, err := s.productsRepo.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}

			if !s.opts.AllowNegativeStock && product.StockQuantity < line.Quantity {
				return fmt.Errorf("%w: %q has %d left, %d requested",
					domain.ErrInsufficientStock, product.Name, product.StockQuantity, line.Quantity)
			}

			// snapshot in cents so the total is the exact sum of its items
			price := decimal.NewFromFloat(product.Price).Round(2)
			prices[i] = price.InexactFloat64()
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		newOrder := domain.Order{
			UserID:          userID,
			TotalAmount:     total.InexactFloat64(),
			Status:          domain.OrderStatusPending,
			ShippingAddress: shippingAddress,
		}
		if err := s.orderRepo.Create(ctx, &newOrder); err != nil {
			return err
		}

		productIDs = productIDs[:0]
		for i, line := range lines {
			item := domain.OrderItem{
				OrderID:   newOrder.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     prices[i],
			}
			if err := s.orderRepo.CreateItem(ctx, &item); err != nil {
				return err
			}

			if err := s.productsRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			productIDs = append(productIDs, line.ProductID)
		}

		if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		order, err = s.orderRepo.FindByID(ctx, newOrder.ID, userID)
		return err
	})
	if err != nil {
		reason := failureReason(err)
		metrics.OrderFailures.WithLabelValues(reason).Inc()
		if reason == "error" {
			logger.Error("Failed to create order", "user_id", userID, "error", err)
		} else {
			logger.Info("Order rejected", "user_id", userID, "reason", reason)
		}
		return domain.Order{}, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, productIDs...); err != nil {
			logger.Warn("Product cache invalidation failed", "product_ids", productIDs, "error", err)
		}
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)
	logger.Info("Order created", "order_id", order.ID, "user_id", userID, "total", order.TotalAmount)

	return order, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID, userID)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
