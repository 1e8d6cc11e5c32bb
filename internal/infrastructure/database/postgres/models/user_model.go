package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User. Password holds the bcrypt
// digest; PasswordResetToken holds a SHA-256 digest of the raw reset token.
type UserModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                 string     `gorm:"type:varchar(150);not null"`
	Email                string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Photo                *string    `gorm:"type:varchar(255)"`
	Role                 string     `gorm:"type:varchar(20);not null;default:'user'"`
	Password             string     `gorm:"type:varchar(255);not null"`
	PasswordChangedAt    *time.Time `gorm:"type:timestamptz"`
	PasswordResetToken   *string    `gorm:"type:varchar(64);index"`
	PasswordResetExpires *time.Time `gorm:"type:timestamptz"`
	Active               bool       `gorm:"default:true;not null"`
	CreatedAt            time.Time  `gorm:"not null"`
	UpdatedAt            time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
