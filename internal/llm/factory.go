package llm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config selects and configures the provider.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

// New builds the configured provider wrapped in a Guarded generator.
func New(cfg Config, logger *zap.Logger) (*Guarded, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}

	var g Generator
	switch provider {
	case ProviderGemini:
		g = NewGeminiClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout)
	case ProviderOpenAI:
		g = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderAnthropic:
		g = NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return NewGuarded(g, provider, limiter, cfg.Timeout, logger), nil
}
