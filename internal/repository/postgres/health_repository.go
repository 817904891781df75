package postgres

import (
	"context"

	"gorm.io/gorm"
)

type HealthRepository struct {
	DB *gorm.DB
}

func NewHealthRepository(db *gorm.DB) *HealthRepository {
	return &HealthRepository{
		DB: db,
	}
}

func (r *HealthRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Dialect names the active store, "postgres" or "sqlite".
func (r *HealthRepository) Dialect() string {
	return r.DB.Dialector.Name()
}
