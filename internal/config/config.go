package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token          string
	GuildID        string
	DatabaseURL    string
	MigrationsPath string
	AdminIDs       []string
	DefaultLocale  string
	// OfferTimeout bounds how long a seat offer stays open before it is
	// auto-declined and passed on. Zero means offers never expire.
	OfferTimeout time.Duration
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment
	// itself (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		Token:          os.Getenv("TOKEN"),
		GuildID:        os.Getenv("GUILD_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		AdminIDs:       splitIDs(os.Getenv("ADMIN_IDS")),
		DefaultLocale:  os.Getenv("DEFAULT_LOCALE"),
	}

	if raw := strings.TrimSpace(os.Getenv("OFFER_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: OFFER_TIMEOUT invalid (%q): %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("config: OFFER_TIMEOUT must not be negative (%q)", raw)
		}
		cfg.OfferTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// validate applies all the business rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}

	for _, id := range c.AdminIDs {
		for _, r := range id {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: ADMIN_IDS must contain Discord user IDs (digits only), got %q", id)
			}
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/eventbot?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): scheme or host missing", c.DatabaseURL)
	}

	if c.MigrationsPath == "" {
		c.MigrationsPath = "migrations"
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "de"
	}

	return nil
}
