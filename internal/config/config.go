package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	BackendURL            string
	DBPath                string
	JWTSecret             string
	LogLevel              string
	RequestTimeoutSeconds int
	TickIntervalMs        int
	RecordWorkerCount     int
	RecordQueueSize       int
	MaxSessions           int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		BackendURL:            strings.TrimRight(envOr("BACKEND_URL", "http://localhost:8080/api"), "/"),
		DBPath:                envOr("DB_PATH", "file:codedrill.db"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		RequestTimeoutSeconds: envIntOr("REQUEST_TIMEOUT_SECONDS", 15),
		TickIntervalMs:        envIntOr("TICK_INTERVAL_MS", 1000),
		RecordWorkerCount:     envIntOr("RECORD_WORKER_COUNT", 2),
		RecordQueueSize:       envIntOr("RECORD_QUEUE_SIZE", 64),
		MaxSessions:           envIntOr("MAX_SESSIONS", 256),
	}
}

// Validate returns the first configuration problem found.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL cannot be empty")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute http(s) URL, got %q", c.BackendURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.RequestTimeoutSeconds < 1 || c.RequestTimeoutSeconds > 300 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be between 1 and 300, got %d", c.RequestTimeoutSeconds)
	}
	if c.TickIntervalMs < 10 {
		return fmt.Errorf("TICK_INTERVAL_MS must be at least 10, got %d", c.TickIntervalMs)
	}
	if c.RecordWorkerCount < 1 {
		return fmt.Errorf("RECORD_WORKER_COUNT must be at least 1, got %d", c.RecordWorkerCount)
	}
	if c.RecordQueueSize < 1 {
		return fmt.Errorf("RECORD_QUEUE_SIZE must be at least 1, got %d", c.RecordQueueSize)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("MAX_SESSIONS must be at least 1, got %d", c.MaxSessions)
	}
	return nil
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
