package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/BauthyBa/bautigatica/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Admin session
	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// Object storage (hosted backend, Supabase-compatible REST API)
	StorageURL        string
	StorageBucket     string
	StorageServiceKey string

	// Checkout handoff
	WhatsAppNumber string

	// Purchase register
	PurchaseHistoryLimit int
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	historyLimit, _ := strconv.Atoi(getEnv("PURCHASE_HISTORY_LIMIT", "50"))

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "bautigatica_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		AdminUsername: getEnv("ADMIN_USERNAME", "bautista"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "bautista"),

		StorageURL:        getEnv("STORAGE_URL", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "product-images"),
		StorageServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "3515306105"),

		PurchaseHistoryLimit: historyLimit,
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Running auto-migrations...")
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Purchase{},
	); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}
	log.Println("Auto-migrations completed successfully")

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
