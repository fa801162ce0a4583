package model

import (
	"time"
)

// WishlistItem is a user's saved-for-later association with a product;
// one row per (user, product).
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                            // wishlist entry ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`    // owner ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // saved product ID
	CreatedAt time.Time `json:"added_at"`                                                         // added timestamp

	// Association (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"` // saved product
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
