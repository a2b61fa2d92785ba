package config

import (
	"os"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate.
type Config struct {
	ListenAddr  string
	DatabaseURL string

	// SelfReportSlug is the project slug this instance reports its own
	// request telemetry to via /ingest. If empty, self-reporting is disabled.
	SelfReportSlug string

	// SelfReportAPIKey is optionally attached to self-reported events so
	// they are associated with an API key on the self-report project.
	SelfReportAPIKey string
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	return &Config{
		ListenAddr:       ":" + getenv("PORT", "8000"),
		DatabaseURL:      os.Getenv("APP_DATABASE_URL"),
		SelfReportSlug:   getenv("APP_SELF_REPORT_SLUG", ""),
		SelfReportAPIKey: getenv("APP_SELF_REPORT_API_KEY", ""),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
