package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products: T-Shirts, Jeans, Jackets, etc.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`               // category ID
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`   // display name
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`   // URL identifier, stable once set
	Description string         `gorm:"type:text" json:"description"`      // description
	ImageURL    string         `json:"image_url"`                         // banner image
	IsActive    bool           `gorm:"default:true" json:"is_active"`     // visibility flag
	CreatedAt   time.Time      `json:"created_at"`                        // created timestamp
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete timestamp

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"` // products in this category
}

func (Category) TableName() string {
	return "categories"
}
