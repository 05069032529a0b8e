package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Database pool
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey string // API key for authentication

	// Bracket phase boundaries
	FinalRound     int
	LastFinalRound int
	MaxLosses      int

	// Player directory cache
	DirectoryCacheSize int
	DirectoryCacheTTL  time.Duration

	// Tournament snapshot cache entries
	SnapshotCacheSize int

	// BCP 47 tag used to format numbers on the dashboard
	DashboardLocale string

	CORSAllowedOrigins []string
	TrustedProxies     []string // proxies allowed to set X-Forwarded-For

	// Optional integrations, disabled when empty
	SentryDSN        string
	DiscordToken     string
	DiscordChannelID string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "grandchallenge"),

		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		APIKey: getEnv("API_KEY", ""),

		FinalRound:     getEnvAsInt("FINAL_ROUND", DefaultFinalRound),
		LastFinalRound: getEnvAsInt("LAST_FINAL_ROUND", DefaultLastFinalRound),
		MaxLosses:      getEnvAsInt("MAX_LOSSES", DefaultMaxLosses),

		DirectoryCacheSize: getEnvAsInt("DIRECTORY_CACHE_SIZE", DefaultDirectoryCacheSize),
		DirectoryCacheTTL:  getEnvAsDuration("DIRECTORY_CACHE_TTL", DefaultDirectoryCacheTTL),

		SnapshotCacheSize: getEnvAsInt("SNAPSHOT_CACHE_SIZE", DefaultSnapshotCacheSize),
		DashboardLocale:   getEnv("DASHBOARD_LOCALE", DefaultDashboardLocale),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	if port < 1 || port > MaxPort {
		return nil, fmt.Errorf("invalid PORT value: %d out of range", port)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.LastFinalRound != cfg.FinalRound+1 {
		return nil, fmt.Errorf("LAST_FINAL_ROUND (%d) must directly follow FINAL_ROUND (%d)", cfg.LastFinalRound, cfg.FinalRound)
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration parses a duration variable ("30s", "5m"), falling back to the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
