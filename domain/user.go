package domain

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	FirstName      string    `gorm:"column:first_name" json:"first_name"`
	LastName       string    `gorm:"column:last_name" json:"last_name"`
	IsActive       bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`

	// Password is the plaintext from a register request; never stored.
	Password string `gorm:"-" json:"-"`
}

func (User) TableName() string {
	return "users"
}
