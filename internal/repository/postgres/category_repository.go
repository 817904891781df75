package postgres

import (
	"context"
	"fmt"

	"myShop/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

// FindAll lists the distinct non-empty categories of active products.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories := []string{}
	err := conn(ctx, r.DB).
		Model(&domain.Product{}).
		Distinct("category").
		Where("is_active = ? AND category <> ''", true).
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}
