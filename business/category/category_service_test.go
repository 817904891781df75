package category

import (
	"context"
	"testing"

	"myShop/domain"
	"myShop/internal/repository/postgres"
	"myShop/pkg/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllCategories(t *testing.T) {
	db := dbtest.New(t)
	products := postgres.NewProductRepository(db)
	ctx := context.Background()

	for _, c := range []string{"tea", "coffee", "tea"} {
		require.NoError(t, products.Create(ctx, &domain.Product{Name: c, Category: c, IsActive: true}))
	}

	svc := NewCategoryService(postgres.NewCategoryRepository(db))
	got, err := svc.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee", "tea"}, got)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.GetAllCategories(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
