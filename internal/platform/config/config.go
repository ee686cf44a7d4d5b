// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/p-n-ai/pai-prep/internal/platform/logging"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Content  ContentConfig
	Schedule ScheduleConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// CacheConfig holds Dragonfly/Redis settings for the parsed corpus cache.
type CacheConfig struct {
	Enabled bool
	URL     string
	TTL     time.Duration
}

// ContentConfig locates the roadmap and question content on disk.
type ContentConfig struct {
	ScheduleDir string
	CorpusRoot  string
	SlidesPath  string
}

// ScheduleConfig holds roadmap validation and quota settings.
type ScheduleConfig struct {
	Days       int
	MinTopics  int
	PolicyPath string // empty selects the built-in quota policy
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LEARN_SERVER_PORT", 8080),
			Host: envStr("LEARN_SERVER_HOST", "0.0.0.0"),
		},
		Cache: CacheConfig{
			Enabled: envBool("LEARN_CACHE_ENABLED", false),
			URL:     envStr("LEARN_CACHE_URL", "redis://localhost:6379"),
			TTL:     time.Duration(envInt("LEARN_CACHE_TTL", 3600)) * time.Second,
		},
		Content: ContentConfig{
			ScheduleDir: envStr("LEARN_CONTENT_SCHEDULE_DIR", "./content/daily-schedule"),
			CorpusRoot:  envStr("LEARN_CONTENT_CORPUS_ROOT", "./content"),
			SlidesPath:  envStr("LEARN_CONTENT_SLIDES_PATH", "./content/full_stack_interview_answers.md"),
		},
		Schedule: ScheduleConfig{
			Days:       envInt("LEARN_SCHEDULE_DAYS", 75),
			MinTopics:  envInt("LEARN_SCHEDULE_MIN_TOPICS", 4),
			PolicyPath: envStr("LEARN_SCHEDULE_POLICY_PATH", ""),
		},
		Log: LogConfig{
			Level:  envStr("LEARN_LOG_LEVEL", "info"),
			Format: envStr("LEARN_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARN_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Content.ScheduleDir == "" {
		return fmt.Errorf("LEARN_CONTENT_SCHEDULE_DIR is required")
	}
	if c.Content.CorpusRoot == "" {
		return fmt.Errorf("LEARN_CONTENT_CORPUS_ROOT is required")
	}

	if c.Schedule.Days < 1 {
		return fmt.Errorf("LEARN_SCHEDULE_DAYS must be at least 1, got %d", c.Schedule.Days)
	}
	if c.Schedule.MinTopics < 0 {
		return fmt.Errorf("LEARN_SCHEDULE_MIN_TOPICS must not be negative, got %d", c.Schedule.MinTopics)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("LEARN_CACHE_TTL must be positive when the cache is enabled")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LEARN_LOG_LEVEL: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
