package config

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/models"
)

// RenderMode selects whether server-rendered pages embed user-controlled
// fields verbatim (the XSS lab behavior) or HTML-escaped.
const (
	RenderModeLab      = "lab"
	RenderModeHardened = "hardened"
)

type Config struct {
	PORT        string
	DB_DRIVER   string
	DB_PATH     string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	JWT_SECRET  string
	RENDER_MODE string
	LOG_LEVEL   string
	WEB_DIR     string

	KAFKA_ADDRESS string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:          getEnv("PORT", "3000"),
		DB_DRIVER:     getEnv("DB_DRIVER", "sqlite"),
		DB_PATH:       getEnv("DB_PATH", "products.db"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		JWT_SECRET:    getEnv("JWT_SECRET", "techstore_jwt_secret_key_2024"),
		RENDER_MODE:   getEnv("RENDER_MODE", RenderModeLab),
		LOG_LEVEL:     getEnv("LOG_LEVEL", "info"),
		WEB_DIR:       getEnv("WEB_DIR", "web"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
	}

	return config, nil
}

// InitDB opens the store and migrates the three lab tables. The default
// is the file-backed sqlite database the lab ships with; DB_DRIVER=postgres
// switches to a server deployment.
func InitDB(configuration *Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch configuration.DB_DRIVER {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			configuration.DB_USER, configuration.DB_PASSWORD,
			configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(configuration.DB_PATH), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.PendingProduct{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
