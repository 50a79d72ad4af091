package models

import "github.com/shopspring/decimal"

type Category struct {
	BaseModel

	Name     string `gorm:"size:45;not null" json:"name"`
	ParentID uint   `gorm:"not null;default:0;index" json:"parent_id"` // 0 for top-level categories

	// Relationships
	Products []Product `gorm:"many2many:category_products;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Product struct {
	BaseModel

	Name                   string `gorm:"size:100;not null"`
	Reference1             string `gorm:"size:15;uniqueIndex;not null"`
	DescriptionDetails     string
	DescriptionComposition string
	DescriptionCare        string
	DescriptionDelivery    string

	// Relationships
	ColorProducts []ColorProduct   `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
}

type Color struct {
	BaseModel

	Name     string `gorm:"size:100;uniqueIndex;not null"`
	Code     string `gorm:"size:5;not null"`
	ImageURL string `gorm:"size:255"`
}

type Size struct {
	BaseModel

	Name string `gorm:"size:10;not null"`
}

// ColorProduct is a product offered in one color; images and variants hang off it.
type ColorProduct struct {
	BaseModel

	ProductID uint `gorm:"not null;index"`
	ColorID   uint `gorm:"not null;index"`

	// Relationships
	Color    Color            `gorm:"foreignKey:ColorID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Images   []ProductImage   `gorm:"foreignKey:ColorProductsID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
	Variants []ProductVariant `gorm:"foreignKey:ColorProductsID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
}

type ProductImage struct {
	BaseModel

	ColorProductsID uint   `gorm:"not null;index"`
	ImageURL        string `gorm:"size:255;not null"`
	Position        int16  `gorm:"index"` // 1 is the primary image
}

type ProductVariant struct {
	BaseModel

	ProductID       uint            `gorm:"not null;index"`
	SizeID          uint            `gorm:"not null;index"`
	ColorProductsID *uint           `gorm:"index"`
	Stock           int64           `gorm:"not null;default:0"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Reference2      string          `gorm:"size:10"`

	// Relationships
	Size Size `gorm:"foreignKey:SizeID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
}
