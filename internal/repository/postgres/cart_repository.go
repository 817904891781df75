package postgres

import (
	"context"
	"errors"
	"fmt"

	"myShop/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items := []domain.CartItem{}

	err := conn(ctx, r.DB).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}

	return items, nil
}

// Upsert inserts the line or adds quantity to the existing one in a single
// statement, so concurrent adds for the same product never create two rows.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error) {
	db := conn(ctx, r.DB)

	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	var saved domain.CartItem
	err = db.Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&saved).Error
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("failed to reload cart item: %w", err)
	}

	return saved, nil
}

// Delete removes the line only when it belongs to userID.
func (r *CartRepository) Delete(ctx context.Context, itemID, userID uint) error {
	result := conn(ctx, r.DB).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID uint) error {
	err := conn(ctx, r.DB).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
