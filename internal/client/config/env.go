package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvServerBaseURL  = "MARKET_API_URL"
	EnvDBPath         = "MARKET_DB_PATH"
	EnvRequestTimeout = "MARKET_REQUEST_TIMEOUT"
	EnvLogLevel       = "MARKET_LOG_LEVEL"
	EnvLogFormat      = "MARKET_LOG_FORMAT"
	EnvCatalogueSeed  = "MARKET_CATALOGUE_SEED"
)

// envFile is loaded into the process environment if it exists. Variables
// that are already set are not overridden.
var envFile = ".env"

// parseEnv overlays Config with MARKET_* variables. Values that are unset or
// fail to parse leave the current setting unchanged.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(envFile)

	cfg.ServerBaseURL = getEnv(EnvServerBaseURL, cfg.ServerBaseURL)
	cfg.DBPath = getEnv(EnvDBPath, cfg.DBPath)
	cfg.RequestTimeout = getDurationEnv(EnvRequestTimeout, cfg.RequestTimeout)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnv(EnvLogFormat, cfg.LogFormat)
	cfg.CatalogueSeed = getInt64Env(EnvCatalogueSeed, cfg.CatalogueSeed)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
