package domain

import "time"

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
