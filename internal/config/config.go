package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Postgres metadata/section store
	DatabaseURL string

	// Blob storage / auth backend
	StorageURL        string
	StorageServiceKey string

	// Sectioning
	MaxSectionLength int

	// Download limits
	MaxDownloadBytes int64

	// Run registry
	RunTTL      time.Duration
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageServiceKey: os.Getenv("STORAGE_SERVICE_KEY"),

		MaxSectionLength: envInt("MAX_SECTION_LENGTH", 2500),

		MaxDownloadBytes: envInt64("MAX_DOWNLOAD_BYTES", 52428800), // 50MB

		RunTTL:      envDuration("RUN_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxSectionLength <= 0 {
		cfg.MaxSectionLength = 2500
	}
	if cfg.MaxDownloadBytes <= 0 {
		cfg.MaxDownloadBytes = 52428800
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.StorageURL == "" {
		return fmt.Errorf("STORAGE_URL is required")
	}
	if c.StorageServiceKey == "" {
		return fmt.Errorf("STORAGE_SERVICE_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
