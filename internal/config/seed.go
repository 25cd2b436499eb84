package config

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/hash"
	"github.com/techstore-lab/techstore/internal/models"
)

// Seed loads the lab fixtures: 4 sample products and 3 users, "admin"
// being the one account the admin check recognizes. It is idempotent so
// restarting the server keeps whatever state the lab session produced.
func Seed(db *gorm.DB) error {
	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if users > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Premium quality wireless headphones with noise cancellation", Price: 199.99},
		{Name: "Smart Watch", Description: "Track your fitness and stay connected with this smart watch", Price: 299.99},
		{Name: "Bluetooth Speaker", Description: "Portable speaker with crystal clear sound and long battery life", Price: 89.99},
		{Name: "USB-C Cable", Description: "High-speed charging and data transfer cable for all your devices", Price: 19.99},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	accounts := []struct {
		Username string
		Password string
		Email    string
	}{
		{"admin", "admin123", "admin@techstore.com"},
		{"user1", "password123", "user1@techstore.com"},
		{"demo", "demo123", "demo@techstore.com"},
	}
	for _, a := range accounts {
		pwHash, err := hash.HashPassword(a.Password)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		user := models.User{Username: a.Username, PasswordHash: pwHash, Email: a.Email}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	return nil
}
