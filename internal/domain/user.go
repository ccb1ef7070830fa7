package domain

import (
	"time"
)

// User is an operator allowed to log in to the API.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Username     string    `gorm:"uniqueIndex;size:128;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	LastLogin    time.Time `json:"last_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}
