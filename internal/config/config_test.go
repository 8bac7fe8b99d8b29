package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("IDENTITY_PROJECT_ID", "iftarmap-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, []string{"res.cloudinary.com"}, cfg.ImageAllowedHosts)
	assert.Contains(t, cfg.LinkAllowedHosts, "maps.app.goo.gl")
	assert.Equal(t, 24*time.Hour, cfg.LinkCacheTTL)
	assert.True(t, cfg.SeedOnStartup)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_RequiresIdentityProject(t *testing.T) {
	t.Setenv("IDENTITY_PROJECT_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ParsesOverrides(t *testing.T) {
	t.Setenv("IDENTITY_PROJECT_ID", "iftarmap-test")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ADMIN_EMAILS", "a@example.com, b@example.com")
	t.Setenv("SEED_TIMEOUT", "2s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 2*time.Second, cfg.SeedTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Setenv("IDENTITY_PROJECT_ID", "iftarmap-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.HTTPPort = 0
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}
