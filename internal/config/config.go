package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	RedisAddr   string // empty disables the forecast cache

	// AllowNegativeStock keeps the ledger decrementing past zero (temporary
	// oversell). When false a fulfillment that would drive an ingredient
	// negative is rejected instead.
	AllowNegativeStock bool

	ForecastWindowDays int
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=canteen port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		AllowNegativeStock: getEnvBool("ALLOW_NEGATIVE_STOCK", true),
		ForecastWindowDays: getEnvInt("FORECAST_WINDOW_DAYS", 30),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=canteen port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN for production")
	}
	if cfg.ForecastWindowDays <= 0 {
		log.Println("[WARN] FORECAST_WINDOW_DAYS must be positive, falling back to 30")
		cfg.ForecastWindowDays = 30
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a valid bool, using default %v", key, v, def)
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a valid integer, using default %d", key, v, def)
		return def
	}
	return n
}
