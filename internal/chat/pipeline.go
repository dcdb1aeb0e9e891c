// Package chat role-plays the customer of a scenario and produces the next
// reply in the conversation.
package chat

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/llm"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// GenericErrorReply stands in for the customer's reply on any failure.
	GenericErrorReply = "申し訳ありません、通信エラーが発生しました。"
)

var ErrEmptyTranscript = errors.New("chat: transcript is empty")

// Request is one chat turn request. PartnerRole is optional.
type Request struct {
	ScenarioID  string
	Messages    []domain.ChatLog
	PartnerRole string
}

// Reply is what the caller sends back. Err is for logs only.
type Reply struct {
	Text   string
	Status string
	Err    error
}

type Pipeline struct {
	gen     llm.Generator
	catalog *Catalog
	logger  *zap.Logger
}

func NewPipeline(gen llm.Generator, catalog *Catalog, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{gen: gen, catalog: catalog, logger: logger.Named("chat")}
}

// BuildRequest converts the transcript into a persona-conditioned conversation.
func (p *Pipeline) BuildRequest(req Request) llm.Request {
	var scenario *Scenario
	if s, ok := p.catalog.Get(req.ScenarioID); ok {
		scenario = &s
	}

	msgs := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llm.RoleUser
		if m.Role == domain.RoleModel {
			role = llm.RoleModel
		}
		msgs = append(msgs, llm.Message{Role: role, Text: m.Content})
	}

	return llm.Request{
		System:   BuildSystemPrompt(req.ScenarioID, scenario, req.PartnerRole),
		Messages: msgs,
	}
}

// Respond returns the model's text verbatim, or the generic error reply.
func (p *Pipeline) Respond(ctx context.Context, req Request) Reply {
	log := logging.FromContext(ctx, p.logger).With(zap.String("scenario_id", req.ScenarioID))
	log.Info("chat request", zap.Int("messages", len(req.Messages)))

	if len(req.Messages) == 0 {
		log.Warn("chat request without messages")
		return Reply{Text: GenericErrorReply, Status: StatusError, Err: ErrEmptyTranscript}
	}

	text, err := p.gen.Generate(ctx, p.BuildRequest(req))
	if err != nil {
		var se *llm.StatusError
		if errors.As(err, &se) {
			log.Error("chat upstream error", zap.Int("status", se.StatusCode), zap.String("body", se.Body))
		} else {
			log.Error("chat failed", zap.String("error", logging.SanitizeError(err)))
		}
		return Reply{Text: GenericErrorReply, Status: StatusError, Err: err}
	}
	return Reply{Text: text, Status: StatusSuccess}
}
