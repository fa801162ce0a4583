package model

// ProductImage stores a reference to externally hosted imagery plus display
// metadata. The binary itself lives in object storage.
type ProductImage struct {
	ID        uint    `gorm:"primarykey" json:"id"`               // image ID
	ProductID uint    `gorm:"index;not null" json:"product_id"`   // owning product ID
	ImageURL  string  `gorm:"not null" json:"image"`              // object storage locator
	AltText   string  `json:"alt_text"`                           // accessibility text
	IsPrimary bool    `gorm:"default:false" json:"is_primary"`    // representative image flag
	SortOrder int     `gorm:"column:sort_order;default:0" json:"order"` // display position
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`      // owning product
}

func (ProductImage) TableName() string {
	return "product_images"
}
