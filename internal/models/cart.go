package models

import "github.com/shopspring/decimal"

const (
	CartStatusActive   = "active"
	CartStatusInactive = "inactive"
)

type Cart struct {
	BaseModel

	// At most one active cart per user, enforced by a partial unique index.
	UserID     uint   `gorm:"not null;index;uniqueIndex:idx_carts_user_active,where:cart_status = 'active'" json:"user_id"`
	CartStatus string `gorm:"size:30;not null;default:active" json:"cart_status"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (c *Cart) Active() bool {
	return c.CartStatus == CartStatusActive
}

type CartItem struct {
	BaseModel

	CartID           uint            `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_variant" json:"cart_id"`
	ProductVariantID uint            `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_variant" json:"product_variant_id"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"` // unit price at the time the line was created

	// Relationships
	ProductVariant ProductVariant `gorm:"foreignKey:ProductVariantID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE" json:"-"`
}
