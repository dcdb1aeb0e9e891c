package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	App      AppConfig
	Share    ShareConfig
}

type ServerConfig struct {
	Port         string `env:"PORT" env-default:"8080"`
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"*"`
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" env-default:"postgres://user:password@db:5432/arch_db"`
	MaxConns int32  `env:"DB_MAX_CONNS" env-default:"10"`
	MinConns int32  `env:"DB_MIN_CONNS" env-default:"2"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// AIConfig selects and tunes the generative model backend. Keys are only
// read from the environment.
type AIConfig struct {
	Provider string `env:"AI_PROVIDER" env-default:"gemini"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`

	Timeout   time.Duration `env:"AI_TIMEOUT" env-default:"60s"`
	RateLimit float64       `env:"AI_RATE_LIMIT" env-default:"5"`
	RateBurst int           `env:"AI_RATE_BURST" env-default:"10"`
}

type AppConfig struct {
	Environment   string `env:"APP_ENV" env-default:"development"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`
	Version       string `env:"APP_VERSION" env-default:"1.0.0"`
	ScenariosFile string `env:"SCENARIOS_FILE"`
}

type ShareConfig struct {
	// BaseURL prefixes short links; derived from the port when empty.
	BaseURL string        `env:"SHARE_BASE_URL"`
	TTL     time.Duration `env:"SHARE_TTL" env-default:"720h"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.Share.BaseURL == "" {
		cfg.Share.BaseURL = "http://localhost:" + cfg.Server.Port + "/s"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.AI.Provider) {
	case llm.ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case llm.ProviderOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
	case llm.ProviderAnthropic:
		if c.AI.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when AI_PROVIDER=anthropic")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	return nil
}

// LLMConfig returns the settings of the selected provider.
func (c *Config) LLMConfig() llm.Config {
	out := llm.Config{
		Provider:  strings.ToLower(c.AI.Provider),
		Timeout:   c.AI.Timeout,
		RateLimit: c.AI.RateLimit,
		RateBurst: c.AI.RateBurst,
	}
	switch out.Provider {
	case llm.ProviderOpenAI:
		out.APIKey, out.Model, out.BaseURL = c.AI.OpenAIAPIKey, c.AI.OpenAIModel, c.AI.OpenAIBaseURL
	case llm.ProviderAnthropic:
		out.APIKey, out.Model, out.BaseURL = c.AI.AnthropicAPIKey, c.AI.AnthropicModel, c.AI.AnthropicBaseURL
	default:
		out.APIKey, out.Model, out.BaseURL = c.AI.GeminiAPIKey, c.AI.GeminiModel, c.AI.GeminiBaseURL
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
