package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STARTING_CASH", "")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg := LoadConfig()
	assert.InDelta(t, 10000.00, cfg.StartingCash, 1e-9)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STARTING_CASH", "2500.50")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("API_KEY", "abc123")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.InDelta(t, 2500.50, cfg.StartingCash, 1e-9)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "abc123", cfg.APIKey)
	assert.True(t, cfg.IsProd)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "secret", DBHost: "db", DBPort: "3306", DBName: "papertrade"}
	assert.Equal(t, "app:secret@tcp(db:3306)/papertrade?parseTime=true", cfg.DSN())
}
