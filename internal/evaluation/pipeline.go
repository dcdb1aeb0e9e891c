// Package evaluation asks the AI service to grade an architecture diagram
// and turns its free-form answer into a structured result.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
)

// Pipeline evaluates diagrams through a Generator.
type Pipeline struct {
	gen    llm.Generator
	logger *zap.Logger
}

func NewPipeline(gen llm.Generator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{gen: gen, logger: logger.Named("evaluation")}
}

// Evaluate never returns an error: every failure is folded into the Result.
// The payload may be any JSON value, not only a saved diagram.
func (p *Pipeline) Evaluate(ctx context.Context, diagram json.RawMessage) Result {
	log := logging.FromContext(ctx, p.logger)

	prompt, err := BuildPrompt(diagram)
	if err != nil {
		log.Warn("evaluation prompt build failed", zap.Error(err))
		return Result{Kind: KindFailed, Err: err}
	}

	text, err := p.gen.Generate(ctx, llm.Prompt(prompt))
	if err != nil {
		var se *llm.StatusError
		switch {
		case errors.As(err, &se):
			log.Error("evaluation upstream error",
				zap.Int("status", se.StatusCode),
				zap.String("body", se.Body))
		case errors.Is(err, llm.ErrNoOutput):
			log.Error("evaluation produced no output")
		default:
			log.Error("evaluation call failed", zap.String("error", logging.SanitizeError(err)))
		}
		return Result{Kind: KindFailed, Err: err}
	}

	return Interpret(text)
}

// CleanResponse strips markdown code fences the model sometimes adds.
func CleanResponse(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// Interpret turns raw model text into a Success or Degraded result. The
// text must be a JSON object whose score, feedback and improvement fields,
// when present, have the requested types. Extra fields are kept.
func Interpret(text string) Result {
	cleaned := CleanResponse(text)

	trimmed := []byte(cleaned)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{Kind: KindDegraded, Raw: cleaned, Err: errors.New("parse evaluation: response is not a JSON object")}
	}
	var a Assessment
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return Result{Kind: KindDegraded, Raw: cleaned, Err: fmt.Errorf("parse evaluation: %w", err)}
	}
	return Result{Kind: KindSuccess, Value: json.RawMessage(cleaned)}
}
