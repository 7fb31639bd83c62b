package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	Storage     string
	DatabaseURL string
	TablePrefix string
	CORSOrigins string
	// Fixture
	FixturePath  string
	WatchFixture bool
	// Drag and drop
	DragPayloadSecret string
	DragPayloadTTL    time.Duration
	DragSessionTTL    time.Duration
	DropEdgeThreshold float64
	// Current user fallback (no authentication)
	DefaultUserID   string
	DefaultUserName string
	RateLimitPerMin int
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       env,
		Storage:           getEnv("STORAGE", StorageMemory),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TablePrefix:       getTablePrefix(env),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		FixturePath:       getEnv("FIXTURE_PATH", ""),
		WatchFixture:      getEnv("WATCH_FIXTURE", "false") == "true",
		DragPayloadSecret: getEnv("DRAG_PAYLOAD_SECRET", getDefaultSecret(env)),
		DragPayloadTTL:    getDuration("DRAG_PAYLOAD_TTL", 10*time.Minute),
		DragSessionTTL:    getDuration("DRAG_SESSION_TTL", 5*time.Minute),
		DropEdgeThreshold: getFloat("DROP_EDGE_THRESHOLD", 8),
		DefaultUserID:     getEnv("DEFAULT_USER_ID", "user_001"),
		DefaultUserName:   getEnv("DEFAULT_USER_NAME", "Echo"),
		RateLimitPerMin:   getInt("RATE_LIMIT_PER_MIN", 600),
		LogDir:            getEnv("LOG_DIR", ""),
		LogMaxFiles:       getInt("LOG_MAX_FILES", 10),
	}
}

// getDefaultSecret only hands out a built-in secret outside prod
func getDefaultSecret(env string) string {
	if env == "prod" {
		return ""
	}
	return "docspace-dev-drag-secret"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f >= 0 {
		return f
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}
