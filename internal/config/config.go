// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for the cache database (always absolute)
	CatalogPath        string // Path to the stock catalog CSV
	AlphaVantageAPIKey string // Empty disables the live quote fallback
	LogLevel           string
	Port               int
	DevMode            bool
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// .env is optional - ignore load errors
	_ = godotenv.Load()

	dataDir := getEnv("SARASAI_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	port, err := strconv.Atoi(getEnv("SARASAI_PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SARASAI_PORT: %w", err)
	}

	catalogPath := getEnv("SARASAI_CATALOG", filepath.Join(absDataDir, "stocks.csv"))

	return &Config{
		DataDir:            absDataDir,
		CatalogPath:        catalogPath,
		AlphaVantageAPIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		LogLevel:           getEnv("SARASAI_LOG_LEVEL", "info"),
		Port:               port,
		DevMode:            getEnv("SARASAI_DEV_MODE", "") == "true",
	}, nil
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
