package category

import (
	"context"
	"fmt"

	"myShop/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]string, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}
