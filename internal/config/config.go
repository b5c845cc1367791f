// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server and its
// subcommands. Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs and verifies access tokens. Required.
	JWTSecret string

	// JWTTTL is the lifetime of an issued token. Defaults to one hour.
	JWTTTL time.Duration

	// SkillStatsURL and PackingURL are the base URLs of the two outbound
	// providers.
	SkillStatsURL string
	PackingURL    string

	// HTTPClientTimeout bounds every outbound provider call. Defaults to 5s.
	HTTPClientTimeout time.Duration

	// RedisURL enables the skill-stats cache when set.
	RedisURL string

	// SkillStatsCacheTTL is how long cached skill statistics stay valid.
	SkillStatsCacheTTL time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// AdminUsername and AdminPassword, when both set, make the seed command
	// ensure an ADMIN account exists.
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SkillStatsURL: getEnv("SKILL_STATS_API_URL", "https://apiprovider.cphbusinessapps.dk/api/v1"),
		PackingURL:    getEnv("PACKING_API_URL", "https://packingapi.cphbusinessapps.dk"),
		RedisURL:      os.Getenv("REDIS_URL"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"JWT_TTL", time.Hour, &cfg.JWTTTL},
		{"HTTP_CLIENT_TIMEOUT", 5 * time.Second, &cfg.HTTPClientTimeout},
		{"SKILL_STATS_CACHE_TTL", 10 * time.Minute, &cfg.SkillStatsCacheTTL},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.fallback)
		if err != nil {
			invalid = append(invalid, err.Error())
			continue
		}
		*d.dst = v
	}

	maxBody, err := getInt64("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		invalid = append(invalid, err.Error())
	}
	cfg.MaxBodyBytes = maxBody

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses key with time.ParseDuration. Zero and negative values
// are rejected.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s=%q is not a positive duration", key, raw)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s=%q is not a positive integer", key, raw)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
