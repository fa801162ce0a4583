package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // user permission level

const (
	RoleUser  UserRole = "user"  // regular shopper
	RoleAdmin UserRole = "admin" // catalog administrator
)

// User rows are owned by the identity service; this module only reads them
// as review authors and wishlist owners.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // user ID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`           // email
	PasswordHash string         `gorm:"not null" json:"-"`                           // password hash
	Name         string         `gorm:"not null" json:"name"`                        // display name
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"` // permission level
	CreatedAt    time.Time      `json:"created_at"`                                  // created timestamp
	UpdatedAt    time.Time      `json:"updated_at"`                                  // updated timestamp
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                              // soft delete timestamp
}

func (User) TableName() string {
	return "users"
}
