package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gangulr/finace/internal/logger"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Server
	Port       string
	CORSOrigin string

	// Store
	StoreDriver string
	MongoURI    string
	MongoDB     string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Auth
	JWTSecret        string
	JWTExpirationDur time.Duration
	RequireAuth      bool
	AuthRateLimit    float64
	MetricsAPIKey    string

	// Records
	SummaryCacheTTL time.Duration
	Location        *time.Location
}

// Load loads configuration from a .env file (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Named("config").Debug("no .env file, using the process environment")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		Port:       getEnv("PORT", "3000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		MongoURI:   os.Getenv("MONGO"),
		MongoDB:    getEnv("MONGO_DB", "finace"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finace"),
		DBPassword: getEnv("DB_PASSWORD", "finace"),
		DBName:     getEnv("DB_NAME", "finace"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		MetricsAPIKey: os.Getenv("METRICS_API_KEY"),
	}

	defaultDriver := DriverPostgres
	if config.MongoURI != "" {
		defaultDriver = DriverMongo
	}
	config.StoreDriver = getEnv("STORE_DRIVER", defaultDriver)
	switch config.StoreDriver {
	case DriverMongo:
		if config.MongoURI == "" {
			return nil, fmt.Errorf("STORE_DRIVER=mongo requires the MONGO connection string")
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (use mongo or postgres)", config.StoreDriver)
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.SummaryCacheTTL = getDuration("SUMMARY_CACHE_TTL", 5*time.Minute)

	requireAuth, err := strconv.ParseBool(getEnv("REQUIRE_AUTH", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUIRE_AUTH value: %w", err)
	}
	config.RequireAuth = requireAuth

	rps, err := strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT", "5"), 64)
	if err != nil || rps < 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be zero (disabled) or a positive number, got %q", os.Getenv("AUTH_RATE_LIMIT"))
	}
	config.AuthRateLimit = rps

	config.Location = time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		config.Location = loc
	}

	return config, nil
}

// PostgresURL returns the connection URL understood by both gorm and golang-migrate.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Named("config").Warnw("invalid duration, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}
