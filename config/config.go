// Package config loads runtime settings from the environment and an optional .env file.
// file: config/config.go
package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

// Config holds every setting the front-end needs at startup.
type Config struct {
	Env            string
	Port           string
	ApplicationURL string
	WebsocketURL   string
	APIBaseURL     string
	APIToken       string
	SessionSecret  string
	TemplatesDir   string
	LogDir         string

	Location           *time.Location
	CommentsPageSize   int
	DebounceDelay      time.Duration
	VisitorIdleTimeout time.Duration

	MetricsEnabled bool
	TracingEnabled bool
}

// Production reports whether the app runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	tz := getEnv("TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	pageSize, err := strconv.Atoi(getEnv("COMMENTS_PAGE_SIZE", "10"))
	if err != nil || pageSize <= 0 {
		return nil, fmt.Errorf("invalid COMMENTS_PAGE_SIZE: must be a positive integer")
	}

	debounceMs, err := strconv.Atoi(getEnv("DEBOUNCE_MS", "500"))
	if err != nil || debounceMs < 0 {
		return nil, fmt.Errorf("invalid DEBOUNCE_MS: must be a non-negative integer")
	}

	idle, err := time.ParseDuration(getEnv("VISITOR_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VISITOR_IDLE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		ApplicationURL:     getEnv("APPLICATION_URL", "http://localhost:8080"),
		WebsocketURL:       getEnv("WEBSOCKET_URL", "ws://localhost:8080/ws"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APIToken:           getEnv("API_TOKEN", ""),
		SessionSecret:      getEnv("SESSION_SECRET", "dev-secret"),
		TemplatesDir:       getEnv("TEMPLATES_DIR", "templates"),
		LogDir:             getEnv("LOG_DIR", ""),
		Location:           loc,
		CommentsPageSize:   pageSize,
		DebounceDelay:      time.Duration(debounceMs) * time.Millisecond,
		VisitorIdleTimeout: idle,
		MetricsEnabled:     getBool("METRICS_ENABLED"),
		TracingEnabled:     getBool("TRACING_ENABLED"),
	}

	if cfg.Production() && cfg.SessionSecret == "dev-secret" {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
	}
	return cfg, nil
}

// SessionKeys derives the cookie hash key (64 bytes) and block key (32 bytes)
// from the session secret.
func (c *Config) SessionKeys() (hashKey, blockKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(c.SessionSecret), nil, []byte("go-ballpark session"))
	hashKey = make([]byte, 64)
	blockKey = make([]byte, 32)
	if _, err = io.ReadFull(r, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err = io.ReadFull(r, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(getEnv(key, "false"))
	return err == nil && v
}
