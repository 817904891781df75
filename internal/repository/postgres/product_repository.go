package postgres

import (
	"context"
	"errors"
	"fmt"

	"myShop/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := conn(ctx, r.DB).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID returns the product regardless of its active flag.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	return r.findByID(ctx, conn(ctx, r.DB), id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
// SQLite serializes writers itself and has no row locks.
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Product, error) {
	db := conn(ctx, r.DB)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findByID(ctx, db, id)
}

func (r *ProductRepository) findByID(ctx context.Context, db *gorm.DB, id uint) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := db.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindActive pages through active products in insertion order.
func (r *ProductRepository) FindActive(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := conn(ctx, r.DB).
		Where("is_active = ?", true).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// DecrementStock subtracts quantity without a floor; callers check stock first.
func (r *ProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	result := conn(ctx, r.DB).
		Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
