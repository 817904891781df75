package domain

import "time"

const OrderStatusPending = "pending"

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	TotalAmount     float64   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Status          string    `gorm:"column:status;not null;default:pending" json:"status"`
	ShippingAddress string    `gorm:"column:shipping_address;type:text" json:"shipping_address,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem keeps the unit price as it was when the order was placed.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric(10,2);not null" json:"price"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
