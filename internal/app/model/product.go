package model

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Gender string // target audience code

const (
	GenderMen    Gender = "M"
	GenderWomen  Gender = "W"
	GenderUnisex Gender = "U"
	GenderKids   Gender = "K"
)

// ValidGender reports whether g is one of the known audience codes.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMen, GenderWomen, GenderUnisex, GenderKids:
		return true
	}
	return false
}

type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                         // product ID
	CategoryID      uint           `gorm:"index;not null" json:"category_id"`            // owning category ID
	Category        Category       `gorm:"foreignKey:CategoryID" json:"-"`               // owning category
	Name            string         `gorm:"not null" json:"name"`                         // display name
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`             // URL identifier, stable once set
	Brand           string         `gorm:"not null" json:"brand"`                        // brand name
	Description     string         `gorm:"type:text" json:"description"`                 // long description
	Gender          Gender         `gorm:"type:varchar(1);default:'U'" json:"gender"`    // target audience
	Price           float64        `gorm:"not null" json:"price"`                        // list price
	DiscountPercent int            `gorm:"default:0" json:"discount_percent"`            // 0-100
	IsActive        bool           `gorm:"default:true" json:"is_active"`                // visibility flag
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`             // homepage highlight
	CreatedAt       time.Time      `json:"created_at"`                                   // created timestamp
	UpdatedAt       time.Time      `json:"updated_at"`                                   // updated timestamp
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete timestamp

	// Relationships; child rows are removed with the product
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// SellingPrice is the list price after discount, rounded to 2 decimals.
// Derived on every read, never stored.
func (p Product) SellingPrice() float64 {
	price := p.Price * (1 - float64(p.DiscountPercent)/100)
	return math.Round(price*100) / 100
}
