package postgres

import (
	"context"
	"errors"
	"fmt"

	"myShop/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// Create inserts the order row only; items are written with CreateItem.
func (r *OrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := conn(ctx, r.DB).Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	if err := conn(ctx, r.DB).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return nil
}

// FindByID returns the order only when it belongs to userID.
func (r *OrdersRepository) FindByID(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	var order domain.Order

	err := conn(ctx, r.DB).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("OrderItems.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders := []domain.Order{}

	err := conn(ctx, r.DB).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("OrderItems.Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}
