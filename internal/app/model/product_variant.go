package model

type VariantSize string // size code

const (
	SizeXS   VariantSize = "XS"
	SizeS    VariantSize = "S"
	SizeM    VariantSize = "M"
	SizeL    VariantSize = "L"
	SizeXL   VariantSize = "XL"
	SizeXXL  VariantSize = "XXL"
	Size28   VariantSize = "28"
	Size30   VariantSize = "30"
	Size32   VariantSize = "32"
	Size34   VariantSize = "34"
	Size36   VariantSize = "36"
	Size38   VariantSize = "38"
	SizeFree VariantSize = "FREE"
)

var knownSizes = map[VariantSize]struct{}{
	SizeXS: {}, SizeS: {}, SizeM: {}, SizeL: {}, SizeXL: {}, SizeXXL: {},
	Size28: {}, Size30: {}, Size32: {}, Size34: {}, Size36: {}, Size38: {},
	SizeFree: {},
}

// ValidSize reports whether s is one of the known size codes.
func ValidSize(s VariantSize) bool {
	_, ok := knownSizes[s]
	return ok
}

// ProductVariant is a size/color combination with its own stock count.
type ProductVariant struct {
	ID        uint        `gorm:"primarykey" json:"id"`                                                    // variant ID
	ProductID uint        `gorm:"not null;uniqueIndex:idx_variant_product_size_color" json:"product_id"`   // owning product ID
	Size      VariantSize `gorm:"type:varchar(5);not null;uniqueIndex:idx_variant_product_size_color" json:"size"` // size code
	Color     string      `gorm:"not null;uniqueIndex:idx_variant_product_size_color" json:"color"`        // color name
	ColorHex  string      `gorm:"type:varchar(7)" json:"color_hex"`                                        // hex code e.g. #000000
	Stock     int         `gorm:"default:0" json:"stock"`                                                  // units on hand
	SKU       string      `gorm:"uniqueIndex;not null" json:"sku"`                                         // stock keeping unit
	Product   Product     `gorm:"foreignKey:ProductID" json:"-"`                                           // owning product
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// InStock is derived from the stock count, never stored.
func (v ProductVariant) InStock() bool {
	return v.Stock > 0
}
