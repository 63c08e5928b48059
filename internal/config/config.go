// Package config reads the process environment, optionally seeded from a
// .env file for local development.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Client side
	PrimaryBaseURL  string
	FallbackBaseURL string
	RequestTimeout  time.Duration
	PageSize        int

	// Local persistence
	StorageBackend string // "file" or "redis"
	StateDir       string
	RedisAddr      string
	RedisPassword  string

	// catalogd
	HTTPPort       string
	DBPath         string
	MigrationsPath string
}

// LoadEnv pulls in .env when running locally. Missing file is fine.
func LoadEnv() {
	if os.Getenv("APP_ENV") != "local" {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env not found: %v. Relying on system environment variables.", err)
	}
}

func Load() *Config {
	LoadEnv()
	return &Config{
		PrimaryBaseURL:  getEnv("PRIMARY_BASE_URL", "http://localhost:5000"),
		FallbackBaseURL: getEnv("FALLBACK_BASE_URL", "https://dummyjson.com"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 15*time.Second),
		PageSize:        getInt("PAGE_SIZE", 30),

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		StateDir:       getEnv("STATE_DIR", defaultStateDir()),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),

		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		DBPath:         getEnv("DB_PATH", "catalog.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "internal/server/repository/migrations"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopcart"
	}
	return filepath.Join(home, ".shopcart")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
