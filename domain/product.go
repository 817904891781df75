package domain

import (
	"time"
)

// Product is a catalog entry. StockQuantity is decremented at checkout and
// never restocked by this service.
type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;not null;index" json:"name"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	Price         float64   `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	StockQuantity int       `gorm:"column:stock_quantity;default:0" json:"stock_quantity"`
	ImageURL      string    `gorm:"column:image_url" json:"image_url"`
	Category      string    `gorm:"column:category;index" json:"category"`
	IsActive      bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
