package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment             string
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWTSecret               string
	AccessTokenTTL          time.Duration
	RefreshTokenTTL         time.Duration
	CSRFTokenTTL            time.Duration
	CORSOrigins             []string
	RateLimitMax            int
	RateLimitWindow         time.Duration
	SignupRateLimitMax      int
	RateLimitMaxEntries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	environment := strings.ToLower(getEnv("APP_ENV", "development"))

	// Production runs behind a trusted proxy that supplies real client
	// addresses, so the broad limit is tighter there.
	defaultRateLimitMax := 1000
	if environment == "production" {
		defaultRateLimitMax = 200
	}

	cfg := &Config{
		Environment:             environment,
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 2)),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AccessTokenTTL:          getDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:         getDuration("REFRESH_TOKEN_TTL", 168*time.Hour),
		CSRFTokenTTL:            getDuration("CSRF_TOKEN_TTL", time.Hour),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "")),
		RateLimitMax:            getInt("RATE_LIMIT_MAX", defaultRateLimitMax),
		RateLimitWindow:         getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		SignupRateLimitMax:      getInt("SIGNUP_RATE_LIMIT_MAX", 10),
		RateLimitMaxEntries:     getInt("RATE_LIMIT_MAX_ENTRIES", 10000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must exceed ACCESS_TOKEN_TTL")
	}

	if c.RateLimitMax <= 0 || c.SignupRateLimitMax <= 0 {
		return fmt.Errorf("rate limit maximums must be positive")
	}

	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}

// IsProduction controls the Secure flag on every cookie the service sets.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
