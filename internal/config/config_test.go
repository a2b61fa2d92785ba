package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_DATABASE_URL", "")
	t.Setenv("APP_SELF_REPORT_SLUG", "")

	cfg := Load()
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.SelfReportSlug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_DATABASE_URL", "postgres://localhost/apimon")
	t.Setenv("APP_SELF_REPORT_SLUG", "apimon-self")
	t.Setenv("APP_SELF_REPORT_API_KEY", "am_internal")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "postgres://localhost/apimon", cfg.DatabaseURL)
	assert.Equal(t, "apimon-self", cfg.SelfReportSlug)
	assert.Equal(t, "am_internal", cfg.SelfReportAPIKey)
}
