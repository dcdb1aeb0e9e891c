package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
)

var keys = []string{
	"PORT", "CORS_ALLOW_ORIGINS", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "AI_PROVIDER",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_BASE_URL",
	"AI_TIMEOUT", "AI_RATE_LIMIT", "AI_RATE_BURST",
	"APP_ENV", "LOG_LEVEL", "APP_VERSION", "SCENARIOS_FILE", "SHARE_BASE_URL", "SHARE_TTL",
}

// cleanEnv unsets every config key for the duration of the test and runs it
// from an empty directory so no .env file is picked up.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.AllowOrigins)
	assert.Equal(t, "postgres://user:password@db:5432/arch_db", cfg.Database.URL)
	assert.EqualValues(t, 10, cfg.Database.MaxConns)
	assert.EqualValues(t, 2, cfg.Database.MinConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 5.0, cfg.AI.RateLimit)
	assert.Equal(t, 10, cfg.AI.RateBurst)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "http://localhost:8080/s", cfg.Share.BaseURL)
	assert.Equal(t, 720*time.Hour, cfg.Share.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("ANTHROPIC_MODEL", "claude-test")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("SHARE_BASE_URL", "https://arch.example.com/s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://arch.example.com/s", cfg.Share.BaseURL)

	lc := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderAnthropic, lc.Provider)
	assert.Equal(t, "sk-ant", lc.APIKey)
	assert.Equal(t, "claude-test", lc.Model)
	assert.Equal(t, 5*time.Second, lc.Timeout)
}

func TestLoadFailsWithoutGeminiKey(t *testing.T) {
	cleanEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadReadsDotEnv(t *testing.T) {
	cleanEnv(t)
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("GEMINI_API_KEY")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{URL: "postgres://x", MaxConns: 10, MinConns: 2},
			AI:       AIConfig{Provider: "gemini", GeminiAPIKey: "k"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"missing database", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"min above max", func(c *Config) { c.Database.MinConns = 20 }, "DB_MIN_CONNS"},
		{"openai without key", func(c *Config) { c.AI.Provider = "openai" }, "OPENAI_API_KEY"},
		{"openai with key", func(c *Config) { c.AI.Provider = "OpenAI"; c.AI.OpenAIAPIKey = "k" }, ""},
		{"anthropic without key", func(c *Config) { c.AI.Provider = "anthropic" }, "ANTHROPIC_API_KEY"},
		{"unknown provider", func(c *Config) { c.AI.Provider = "llama" }, "unsupported AI_PROVIDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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
}
