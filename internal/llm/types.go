// Package llm talks to the external generative-AI service. The Gemini client
// speaks the contents/parts wire format directly; OpenAI and Anthropic are
// available as alternative providers behind the same Generator interface.
package llm

import "context"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one conversation turn. Role is RoleUser or RoleModel; anything
// other than RoleModel is sent as a user turn.
type Message struct {
	Role string
	Text string
}

// Request is a whole conversation. System is optional persona framing.
type Request struct {
	System   string
	Messages []Message
}

// Generator produces the text of the first candidate for a conversation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Prompt wraps a single prompt as the entire conversation.
func Prompt(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Text: text}}}
}

func isModel(role string) bool { return role == RoleModel }
