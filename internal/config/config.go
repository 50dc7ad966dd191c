package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Redis
	RedisURL string

	// Cart
	CartKey string
	TaxRate float64

	// Catalog
	CatalogURL string

	// Order submission (formsubmit-style email endpoint)
	OrderEndpoint string

	// Storefront identity
	StoreName       string
	DefaultCurrency string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

func Load() *Config {
	taxRate, err := strconv.ParseFloat(getEnv("TAX_RATE", "0.07"), 64)
	if err != nil || taxRate < 0 {
		taxRate = 0.07
	}
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))

	return &Config{
		// Server
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Cart - single persisted slot, same key the web client used
		CartKey: getEnv("CART_KEY", "minishop.cart"),
		TaxRate: taxRate,

		// Catalog
		CatalogURL: getEnv("CATALOG_URL", ""),

		// Order submission
		OrderEndpoint: getEnv("ORDER_ENDPOINT", ""),

		// Storefront identity
		StoreName:       getEnv("STORE_NAME", "MiniShop"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),

		// Pagination
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
