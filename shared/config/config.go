package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Server   ServerConfig
}

// Supported values for DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver string

	// MongoDB
	URI  string
	Name string

	// PostgreSQL
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLite
	Path string

	Timeout time.Duration
}

type RedisConfig struct {
	Enabled       bool
	Host          string
	Port          string
	Password      string
	DB            int
	CategoriesTTL time.Duration
	AdvertisedTTL time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

type ServerConfig struct {
	Port        string
	Host        string
	Env         string
	CORSOrigins string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name:     getEnv("MONGO_DB", "sellerBD"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "seller_bd"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "seller_bd.db"),
			Timeout:  getEnvDuration("DB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:       getEnvBool("REDIS_ENABLED", true),
			Host:          getEnv("REDIS_HOST", "localhost"),
			Port:          getEnv("REDIS_PORT", "6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvInt("REDIS_DB", 0),
			CategoriesTTL: getEnvDuration("CACHE_CATEGORIES_TTL", time.Hour),
			AdvertisedTTL: getEnvDuration("CACHE_ADVERTISED_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:      getEnv("ACCESS_TOKEN", "your-super-secret-jwt-key"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
			Issuer:      getEnv("JWT_ISSUER", "seller-bd"),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "5000"),
			Host:        getEnv("HOST", "0.0.0.0"),
			Env:         getEnv("APP_ENV", "dev"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid boolean for %s, using default %t", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
