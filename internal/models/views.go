package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read models filled by join queries. None of these are tables.

type CartItemView struct {
	ID               uint            `json:"id"`
	CartID           uint            `json:"cart_id"`
	ProductVariantID uint            `json:"product_variant_id"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	ProductName      string          `json:"product_name"`
	ImageURL         string          `json:"image_url"`
	Color            string          `json:"color"`
	Size             string          `json:"size"`
}

type VariantView struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SizeName        string          `json:"size_name"`
	Color           string          `json:"color"`
	Stock           int64           `json:"stock"`
	Price           decimal.Decimal `json:"price"`
	Reference2      string          `json:"reference2"`
	ColorProductsID *uint           `json:"color_products_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CategoryProductView struct {
	Position      int16           `json:"position"`
	ImageURL      string          `json:"image_url"`
	ProductID     uint            `json:"product_id"`
	ColorCode     string          `json:"color_code"`
	ColorImageURL string          `json:"color_image_url"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    uint            `json:"category_id"`
	CategoryName  string          `json:"category_name"`
}

type ProductDetailView struct {
	ID                     uint            `json:"id"`
	Name                   string          `json:"name"`
	DescriptionDetails     string          `json:"description_details"`
	DescriptionComposition string          `json:"description_composition"`
	DescriptionCare        string          `json:"description_care"`
	DescriptionDelivery    string          `json:"description_delivery"`
	ProductVariantID       uint            `json:"product_variant_id"`
	Price                  decimal.Decimal `json:"price"`
}

type ProductImageView struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"image_url"`
	Position int16  `json:"position"`
	Code     string `json:"code"`
}

type ProductColorView struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ImageURL string `json:"image_url"`
	ColorID  uint   `json:"color_id"`
}

type ProductSizeView struct {
	SizeID uint   `json:"size_id"`
	Name   string `json:"name"`
	Stock  int64  `json:"stock"`
}

type OrderSummary struct {
	ID          uint            `json:"id"`
	OrderStatus string          `json:"order_status"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
