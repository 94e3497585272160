// Package config provides configuration loading and validation for the
// ScholarIQ backend.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds the settings the API server and background jobs read
// from the environment. DATABASE_URL is the only required value; everything
// else has a default or marks an optional subsystem.
type ServerConfig struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKey enables the advisor chatbot; empty disables it.
	GeminiAPIKey string

	// MatchModelDir points at the ONNX match classifier bundle; empty runs
	// the ranking pipeline rules-only.
	MatchModelDir string

	// DefaultCountry substitutes for a missing nationality when building
	// profile snapshots for scoring.
	DefaultCountry string

	// SES email settings for deadline reminders; empty region disables the
	// reminder job.
	SESRegion  string
	MailSender string

	// AdminEmails lists the accounts allowed to manage the catalog and the
	// fraud review queue. Empty disables the admin surface.
	AdminEmails []string

	LogJSON  bool
	LogDebug bool
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	defaultCountry := os.Getenv("DEFAULT_COUNTRY")
	if defaultCountry == "" {
		defaultCountry = "Pakistan"
	}

	cfg := &ServerConfig{
		Port:           port,
		DatabaseURL:    databaseURL,
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		MatchModelDir:  os.Getenv("MATCH_MODEL_DIR"),
		DefaultCountry: defaultCountry,
		SESRegion:      os.Getenv("SES_REGION"),
		MailSender:     os.Getenv("MAIL_SENDER"),
		AdminEmails:    splitEmails(os.Getenv("ADMIN_EMAILS")),
		LogJSON:        os.Getenv("LOG_FORMAT") == "json",
		LogDebug:       os.Getenv("LOG_DEBUG") == "true",
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.SESRegion != "" && c.MailSender == "" {
		return fmt.Errorf("MAIL_SENDER is required when SES_REGION is set")
	}
	return nil
}

// IsAdminEmail reports whether email belongs to a configured admin. The
// comparison is case-insensitive.
func (c *ServerConfig) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// splitEmails parses a comma-separated address list, dropping empty entries.
func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
