package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface of the server.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Voice     VoiceConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port          string
	AllowedOrigin string
}

// StoreConfig points at the local SQLite file.
type StoreConfig struct {
	Path string
}

// VoiceConfig controls announcements.
type VoiceConfig struct {
	// WebhookURL is the optional text-to-speech bridge. Empty means
	// announcements only go to the log.
	WebhookURL string
	// BillPromptWindow is how long the bill question waits before it
	// counts as a "no".
	BillPromptWindow time.Duration
}

// ReportingConfig holds the evening summary schedule.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally via a .env file) and
// materializes a Config instance. A missing .env file is fine; the shop PC
// usually sets nothing and runs on defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigin: getenvWithDefault("ALLOWED_ORIGIN", "http://localhost:5173"),
		},
		Store: StoreConfig{
			Path: getenvWithDefault("DB_PATH", "minimart.db"),
		},
		Voice: VoiceConfig{
			WebhookURL:       os.Getenv("VOICE_WEBHOOK_URL"),
			BillPromptWindow: promptWindowFromEnv(),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("SUMMARY_CRON", "0 21 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the required fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if c.Store.Path == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.Reporting.CronSchedule == "" {
		return errors.New("SUMMARY_CRON must not be empty")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must not be empty")
	}
	return nil
}

// promptWindowFromEnv parses BILL_PROMPT_TIMEOUT_MS, falling back to the
// stock five seconds on anything unparseable.
func promptWindowFromEnv() time.Duration {
	raw := os.Getenv("BILL_PROMPT_TIMEOUT_MS")
	if raw == "" {
		return 5000 * time.Millisecond
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 5000 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
