package models

import (
	"time"
)

type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
}

// PendingProduct is a public submission awaiting review. Approval copies
// the row into Product and removes it; rejection removes it with no trace.
type PendingProduct struct {
	ID          int     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}
