package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
)

// Guarded wraps a Generator with a rate limiter, call metrics and logging.
type Guarded struct {
	next     Generator
	provider string
	limiter  *rate.Limiter
	timeout  time.Duration
	metrics  *Metrics
	logger   *zap.Logger
}

// NewGuarded wraps next. A nil limiter disables rate limiting and a zero
// timeout leaves the deadline to the caller's context.
func NewGuarded(next Generator, provider string, limiter *rate.Limiter, timeout time.Duration, logger *zap.Logger) *Guarded {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guarded{
		next:     next,
		provider: provider,
		limiter:  limiter,
		timeout:  timeout,
		metrics:  &Metrics{},
		logger:   logger.Named("llm"),
	}
}

func (g *Guarded) Generate(ctx context.Context, req Request) (string, error) {
	log := logging.FromContext(ctx, g.logger)

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%s rate limit: %w", g.provider, err)
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.next.Generate(ctx, req)
	elapsed := time.Since(start)
	g.metrics.record(elapsed, err)

	if err != nil {
		log.Error("LLM request failed",
			zap.String("provider", g.provider),
			zap.Duration("elapsed", elapsed),
			zap.String("error", logging.SanitizeError(err)))
		return "", err
	}

	log.Info("LLM request completed",
		zap.String("provider", g.provider),
		zap.Int("messages", len(req.Messages)),
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", elapsed))
	log.Debug("LLM raw response", zap.String("text", text))
	return text, nil
}

// Metrics returns the call counters for this generator.
func (g *Guarded) Metrics() MetricsSnapshot {
	return g.metrics.Snapshot()
}
