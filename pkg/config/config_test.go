package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"JWT_SECRET_KEY", "JWT_EXPIRATION_HOURS",
		"SESSION_TTL_MINUTES", "SESSION_SWEEP_INTERVAL_MINUTES",
		"KNOWLEDGE_BASE_PATH", "ASSISTANT_SUPPORT_EMAIL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 120*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Session.SweepInterval)
	assert.Empty(t, cfg.Knowledge.Path)
	assert.Equal(t, "support@admitiq.edu", cfg.Assistant.SupportEmail)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("KNOWLEDGE_BASE_PATH", "/etc/admitiq/qa.yaml")
	t.Setenv("ASSISTANT_SUPPORT_EMAIL", "help@example.edu")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "/etc/admitiq/qa.yaml", cfg.Knowledge.Path)
	assert.Equal(t, "help@example.edu", cfg.Assistant.SupportEmail)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := map[string]string{
		"SERVER_READ_TIMEOUT":  "soon",
		"JWT_EXPIRATION_HOURS": "-1",
		"SESSION_TTL_MINUTES":  "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
