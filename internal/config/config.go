package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all runtime settings. Every value has a development default
// so the app can start without a full environment.
type Config struct {
	AppEnv   string
	LogLevel string
	Addr     string

	DatabaseURL   string
	MigrationsDir string

	RedisAddr string
	CacheTTL  time.Duration

	JWTSecret string

	EmbeddingsURL    string
	EmbeddingsAPIKey string
	EmbedTimeout     time.Duration

	// Order summary constants. The formula is fixed; only the numbers are
	// configurable.
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
	CheckoutTimeout       time.Duration
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Addr:     getEnv("STOREFRONT_ADDR", ":8080"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		EmbeddingsURL:    getEnv("EMBEDDINGS_URL", ""),
		EmbeddingsAPIKey: getEnv("EMBEDDINGS_API_KEY", ""),
		EmbedTimeout:     getEnvDuration("EMBEDDINGS_TIMEOUT", 10*time.Second),

		FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 500),
		ShippingFee:           getEnvFloat("SHIPPING_FEE", 50),
		TaxRate:               getEnvFloat("TAX_RATE", 0.08),
		CheckoutTimeout:       getEnvDuration("CHECKOUT_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
