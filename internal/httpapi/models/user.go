package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  *string   `gorm:"uniqueIndex;size:150" json:"username,omitempty"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"size:30" json:"first_name"`
	LastName  string    `gorm:"size:30" json:"last_name"`
	Bio       string    `gorm:"size:500" json:"bio"`
	Role      string    `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin"
	IsActive  bool      `gorm:"default:true;not null" json:"is_active"`
	IsStaff   bool      `gorm:"default:false;not null" json:"is_staff"`
	CreatedAt time.Time `json:"date_joined"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
