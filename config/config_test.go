package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "careerlens", cfg.Mongo.Database)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "local", cfg.Storage.ImageStore)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("VERTEX_PROJECT", "careerlens-prod")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, []string{
		"https://a.example.com",
		"https://b.example.com",
		"https://app.example.com",
	}, cfg.App.AllowedOrigins())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing mongo", map[string]string{"GOOGLE_API_KEY": "k"}, "MONGO_URI"},
		{"missing api key", map[string]string{"MONGO_URI": "mongodb://x"}, "GOOGLE_API_KEY"},
		{"unknown provider", map[string]string{"MONGO_URI": "mongodb://x", "LLM_PROVIDER": "openai"}, "LLM_PROVIDER"},
		{"gcs without bucket", map[string]string{"MONGO_URI": "mongodb://x", "GOOGLE_API_KEY": "k", "IMAGE_STORE": "gcs"}, "GCS_BUCKET"},
		{"origin without scheme", map[string]string{"MONGO_URI": "mongodb://x", "GOOGLE_API_KEY": "k", "CORS_ORIGINS": "app.example.com"}, "CORS origin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MONGO_URI", "")
			t.Setenv("GOOGLE_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
