package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis session storage (optional; in-memory store when empty)
	RedisURL string

	// Session
	SessionSecret string // Used for signing and encrypting cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Admin bootstrap: an account registering with this email becomes the
	// auto-approved admin. The site config file can add more (see SiteConfig).
	AdminEmail string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", "starttls"

	// Site Branding
	SiteTitle string

	// Site file settings (config.yaml); always non-nil after Load.
	Site *SiteConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	return &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/familyservices?sslmode=disable"),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Family Services"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		SiteTitle: getEnv("SITE_TITLE", "Family Services"),

		Site: DefaultSiteConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsAdminEmail reports whether a registering email should become the
// bootstrap admin account.
func (c *Config) IsAdminEmail(email string) bool {
	if c.AdminEmail != "" && email == c.AdminEmail {
		return true
	}
	if c.Site != nil {
		for _, a := range c.Site.Admins {
			if a.Email == email {
				return true
			}
		}
	}
	return false
}
