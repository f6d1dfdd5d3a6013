package app

import (
	"os"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
)

type Config struct {
	AzBinary      string // Optional: Azure CLI executable (default: az)
	ManagementURL string // Optional: ARM endpoint (default: https://management.azure.com)
	Env           string // Environment (dev, staging, prod) (default: dev)
	LogLevel      string // Log level (debug, info, warn, error) (default: info)
	LogFormat     string // Log format (json, text) (default: json)
}

func LoadConfig() Config {
	return Config{
		AzBinary:      getEnvOrDefault("AZPIM_AZ_BINARY", "az"),
		ManagementURL: getEnvOrDefault("AZPIM_MANAGEMENT_URL", azpim.DefaultManagementURL),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
