package model

import (
	"time"
)

// Review is a product rating by a user; one review per user per product,
// enforced by the composite unique index and a rating check constraint.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                          // review ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"` // reviewed product ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"user_id"`    // author ID
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`                        // author
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`       // 1-5
	Title     string    `json:"title"`                                                          // short headline
	Comment   string    `gorm:"type:text" json:"comment"`                                       // review body
	CreatedAt time.Time `json:"created_at"`                                                     // created timestamp

	Product Product `gorm:"foreignKey:ProductID" json:"-"` // reviewed product
}

func (Review) TableName() string {
	return "reviews"
}
