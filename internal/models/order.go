package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel

	UserID          uint            `gorm:"not null;index" json:"user_id"`
	OrderStatus     string          `gorm:"size:50;not null" json:"order_status"`
	OrderDate       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"order_date"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"size:255;not null" json:"shipping_address"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"items"`
}

type OrderItem struct {
	BaseModel

	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	ProductVariantID uint            `gorm:"not null;index" json:"product_variant_id"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	// Relationships
	ProductVariant ProductVariant `gorm:"foreignKey:ProductVariantID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
}
