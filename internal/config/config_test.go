package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"APP_PORT", "LOG_LEVEL", "LOG_DEVELOPMENT", "REFERENCE_TABLES_PATH",
	"MONGODB_URI", "MONGODB_DB_NAME",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_LEDGER_ID",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN", "WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION",
	"DIGEST_CRON_SCHEDULE", "TIMEZONE", "DIGEST_RECIPIENT",
}

// clearEnv blanks every variable Load reads; getenvWithDefault treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
	}
}

func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, "fertiplan", cfg.MongoDB.DBName)
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Equal(t, "https://graph.facebook.com", cfg.WhatsApp.BaseURL)
	assert.Equal(t, "v20.0", cfg.WhatsApp.APIVersion)
	assert.Equal(t, "0 20 * * 5", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Asia/Kolkata", cfg.Reporting.Timezone)
	assert.False(t, cfg.DigestEnabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\n" +
		"MONGODB_URI=mongodb://localhost:27017\n" +
		"GOOGLE_SHEET_LEDGER_ID=sheet-123\n" +
		"GOOGLE_SHEETS_CREDENTIALS_PATH=/secrets/sa.json\n" +
		"WHATSAPP_TOKEN=token\n" +
		"WHATSAPP_PHONE_NUMBER_ID=12345\n" +
		"META_VERIFY_TOKEN=verify\n" +
		"DIGEST_RECIPIENT=919800000000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv does not override variables already present, so unset the blanks first.
	for _, key := range managedKeys {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.MongoDB.Enabled())
	assert.True(t, cfg.Sheets.Enabled())
	assert.True(t, cfg.WhatsApp.Enabled())
	assert.True(t, cfg.DigestEnabled())
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080"},
		MongoDB:   MongoDBConfig{DBName: "fertiplan"},
		WhatsApp:  WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Asia/Kolkata"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"mongo without db name", func(c *Config) { c.MongoDB = MongoDBConfig{URI: "mongodb://x"} }, "MONGODB_DB_NAME"},
		{"sheets without credentials", func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"whatsapp without verify token", func(c *Config) {
			c.WhatsApp.AccessToken = "t"
			c.WhatsApp.PhoneNumberID = "p"
		}, "META_VERIFY_TOKEN"},
		{"missing cron", func(c *Config) { c.Reporting.CronSchedule = "" }, "DIGEST_CRON_SCHEDULE"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
