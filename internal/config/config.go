package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Source site configuration.
	SourceBaseURL string
	FetchTimeout  time.Duration
	PageCacheSize int

	// Trend sink configuration.
	KafkaBrokers    []string
	KafkaTrendTopic string
	SinkEnabled     bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDurationEnv("FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseIntEnv("PAGE_CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}

	brokers := splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092"))
	sinkEnabled := os.Getenv("TREND_SINK_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceBaseURL: envOrDefault("SOURCE_BASE_URL", "https://ebird.org"),
		FetchTimeout:  fetchTimeout,
		PageCacheSize: cacheSize,

		KafkaBrokers:    brokers,
		KafkaTrendTopic: envOrDefault("KAFKA_TREND_TOPIC", "bird-trend-points"),
		SinkEnabled:     sinkEnabled,
	}

	if cfg.SourceBaseURL == "" {
		return nil, errors.New("SOURCE_BASE_URL is required")
	}
	if cfg.SinkEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("TREND_SINK_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.SinkEnabled && cfg.KafkaTrendTopic == "" {
		return nil, errors.New("TREND_SINK_ENABLED is true but KAFKA_TREND_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
