package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CRM_APP_URL", "https://contoso.crm.example.com")
	t.Setenv("CRM_USERNAME", "qa.runner@contoso.example.com")
	t.Setenv("CRM_PASSWORD", "hunter2")
}

func clearAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CRM_APP_URL", "CRM_API_URL", "CRM_USERNAME", "CRM_PASSWORD",
		"CRM_API_TOKEN", "CRM_HEADLESS", "CRM_TIMEOUT_MS", "CRM_SETTLE_MS",
	} {
		// t.Setenv registers the restore; the value itself must be
		// unset so godotenv treats the key as absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAll(t)
	setRequired(t)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://contoso.crm.example.com", s.AppURL)
	assert.Equal(t, "https://contoso.crm.example.com/api/data/v9.2", s.APIURL)
	assert.True(t, s.Headless)
	assert.Equal(t, DefaultTimeout, s.DefaultTimeout)
	assert.Equal(t, DefaultSettle, s.SettleTime)
}

func TestLoadMissingRequired(t *testing.T) {
	clearAll(t)
	t.Setenv("CRM_APP_URL", "https://contoso.crm.example.com")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "CRM_USERNAME")
	assert.Contains(t, err.Error(), "CRM_PASSWORD")
	assert.NotContains(t, err.Error(), "CRM_APP_URL")
}

func TestLoadOverrides(t *testing.T) {
	clearAll(t)
	setRequired(t)
	t.Setenv("CRM_API_URL", "https://contoso.api.example.com/data/v9.2/")
	t.Setenv("CRM_HEADLESS", "false")
	t.Setenv("CRM_TIMEOUT_MS", "45000")
	t.Setenv("CRM_SETTLE_MS", "750")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://contoso.api.example.com/data/v9.2", s.APIURL)
	assert.False(t, s.Headless)
	assert.Equal(t, 45*time.Second, s.DefaultTimeout)
	assert.Equal(t, 750*time.Millisecond, s.SettleTime)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad headless flag", key: "CRM_HEADLESS", value: "maybe"},
		{name: "non-numeric timeout", key: "CRM_TIMEOUT_MS", value: "30s"},
		{name: "negative settle", key: "CRM_SETTLE_MS", value: "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAll(t)
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearAll(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "CRM_APP_URL=https://envfile.crm.example.com\n" +
		"CRM_USERNAME=file.user@example.com\n" +
		"CRM_PASSWORD=from-file\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	s, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://envfile.crm.example.com", s.AppURL)
	assert.Equal(t, "from-file", s.Password)
}

func TestLoadEnvFileAbsent(t *testing.T) {
	clearAll(t)
	setRequired(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestRequireAPIToken(t *testing.T) {
	clearAll(t)
	setRequired(t)

	s, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, s.RequireAPIToken(), ErrMissing)

	s.APIToken = "token-123"
	assert.NoError(t, s.RequireAPIToken())
}
