// Package config provides configuration management for the build creator.
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// Discord
	DiscordToken string

	// Deadlock data providers
	AssetsBaseURL string
	StatsBaseURL  string

	// Hero meta page for the /meta scraper
	MetaURL string

	// Redis
	RedisURL string

	// Health server
	HealthAddr string

	// Paths
	DataDir string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		AssetsBaseURL: getEnvOrDefault("ASSETS_BASE_URL", "https://assets.deadlock-api.com"),
		StatsBaseURL:  getEnvOrDefault("STATS_BASE_URL", "https://api.deadlock-api.com"),

		MetaURL: getEnvOrDefault("META_URL", "https://tracklock.gg/heroes"),

		RedisURL: os.Getenv("REDIS_URL"),

		HealthAddr: getEnvOrDefault("HEALTH_ADDR", ":8080"),

		DataDir: getEnvOrDefault("DATA_DIR", "data"),
	}

	return cfg, nil
}

// Validate checks if all required configuration values are set.
func (c *Config) Validate() error {
	var errs []string

	if c.DiscordToken == "" {
		errs = append(errs, "DISCORD_TOKEN is missing")
	}

	if len(errs) > 0 {
		log.Println("Config errors:")
		for _, e := range errs {
			log.Printf("  - %s", e)
		}
		return errors.New("configuration validation failed")
	}

	return nil
}

// ItemDataPath returns the full path to the items.json fallback dump.
func (c *Config) ItemDataPath() string {
	return filepath.Join(c.DataDir, "items.json")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
