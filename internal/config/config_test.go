package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var configEnvKeys = []string{
	"PORT",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_ID", "GRAPH_BASE_URL",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
}

// clearConfigEnv unsets every config variable and restores the previous
// values when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		if value, ok := os.LookupEnv(key); ok {
			t.Setenv(key, value)
		}
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_MissingWhatsAppToken(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("GEMINI_API_KEY", "test_key")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "WHATSAPP_TOKEN")
}

func TestLoad_MissingDBPassword(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "test_key")
	t.Setenv("WHATSAPP_TOKEN", "test_token")
	t.Setenv("WHATSAPP_PHONE_ID", "12345")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "test_key")
	t.Setenv("WHATSAPP_TOKEN", "test_token")
	t.Setenv("WHATSAPP_PHONE_ID", "12345")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "https://graph.facebook.com/v19.0", cfg.GraphBaseURL)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "ggfinance", cfg.Database.Name)
	assert.Equal(t, "ggfinance", cfg.Database.User)
}
