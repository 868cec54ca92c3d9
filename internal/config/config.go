/*
Package config loads every setting for one run from the environment into an
immutable Config passed explicitly to each component.
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL   string `validate:"required,url"`
	PostsPath string `validate:"required"`
	MediaPath string `validate:"required"`
	TagsPath  string `validate:"required"`

	Username    string
	AppPassword string

	CategoryID string
	Status     string `validate:"required,oneof=publish draft pending private"`
	Tags       []string
	SlugPrefix string `validate:"required"`

	FinnhubAPIKey string
	OpenAIAPIKey  string
	GeminiAPIKey  string

	Location  *time.Location `validate:"-"`
	OutputDir string         `validate:"required"`
	LogLevel  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string
}

// Load reads the environment (after a best-effort .env load), applies
// defaults, and validates the result. Nothing reads the environment after
// Load returns.
func Load() (*Config, error) {
	// A missing .env file is fine; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:   getEnvOrDefault("WP_BASE_URL", "https://example.com"),
		PostsPath: getEnvOrDefault("WP_POSTS_PATH", "/wp-json/wp/v2/posts"),
		MediaPath: getEnvOrDefault("WP_MEDIA_PATH", "/wp-json/wp/v2/media"),
		TagsPath:  getEnvOrDefault("WP_TAGS_PATH", "/wp-json/wp/v2/tags"),

		Username:    os.Getenv("WP_USERNAME"),
		AppPassword: os.Getenv("WP_APP_PASSWORD"),

		CategoryID: getEnvOrDefault("WP_CATEGORY_ID", "2"),
		Status:     getEnvOrDefault("WP_STATUS", "publish"),
		Tags:       parseTags(getEnvOrDefault("WP_TAGS", "stocks,markets,ai")),
		SlugPrefix: getEnvOrDefault("SLUG_PREFIX", "market-summary"),

		FinnhubAPIKey: os.Getenv("FINNHUB_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),

		OutputDir: getEnvOrDefault("OUTPUT_DIR", "."),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getIntEnvOrDefault("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: os.Getenv("MAIL_FROM"),
		MailTo:   os.Getenv("MAIL_TO"),
	}

	tz := getEnvOrDefault("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// RequireCMS reports whether the credentials needed to publish are present.
// Their absence aborts the run before any network call.
func (c *Config) RequireCMS() error {
	if c.Username == "" || c.AppPassword == "" {
		return fmt.Errorf("missing required config: WP_USERNAME and WP_APP_PASSWORD")
	}
	return nil
}

func parseTags(s string) []string {
	parts := strings.Split(s, ",")
	var tags []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvOrDefault returns the environment variable as an int or a default.
func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
