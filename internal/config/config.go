package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Reference ReferenceConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level       string
	Development bool
}

// ReferenceConfig points at an optional YAML file replacing the embedded agronomy tables.
type ReferenceConfig struct {
	TablesPath string
}

// MongoDBConfig holds settings for the recommendation archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the archive should be wired.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// SheetsConfig contains what is needed to append to the recommendation ledger.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the ledger should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether the WhatsApp channel should be wired.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// ReportingConfig holds the digest scheduler settings.
type ReportingConfig struct {
	CronSchedule    string
	Timezone        string
	DigestRecipient string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:       getenvWithDefault("LOG_LEVEL", "info"),
			Development: os.Getenv("LOG_DEVELOPMENT") == "true",
		},
		Reference: ReferenceConfig{
			TablesPath: os.Getenv("REFERENCE_TABLES_PATH"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "fertiplan"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Reporting: ReportingConfig{
			CronSchedule:    getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:        getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
			DigestRecipient: os.Getenv("DIGEST_RECIPIENT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required fields are populated and optional integrations are complete.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty when MONGODB_URI is set")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_LEDGER_ID is set")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided when WhatsApp is enabled")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}

	return nil
}

// DigestEnabled reports whether the weekly digest has a source, a channel and a recipient.
func (c *Config) DigestEnabled() bool {
	return c.Sheets.Enabled() && c.WhatsApp.Enabled() && c.Reporting.DigestRecipient != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
