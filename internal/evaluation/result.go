package evaluation

import "encoding/json"

const (
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"

	// GenericErrorMessage is shown to users whenever the AI call itself failed.
	GenericErrorMessage = "AI評価中にエラーが発生しました"
)

// Kind tags the three possible evaluation outcomes.
type Kind int

const (
	KindSuccess Kind = iota
	KindDegraded
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindDegraded:
		return StatusPartialSuccess
	case KindFailed:
		return StatusError
	}
	return "unknown"
}

// Result is the outcome of one evaluation. Value holds the parsed model output
// for KindSuccess, Raw the cleaned text for KindDegraded and Err the cause
// for KindFailed. Err is for logs only.
type Result struct {
	Kind  Kind
	Value json.RawMessage
	Raw   string
	Err   error
}

// Assessment is the structure the model is asked to return.
type Assessment struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
}

type fallback struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Status   string `json:"status"`
}

// Payload renders the response body for the result. Success returns the
// model's object verbatim; the other kinds return a fixed fallback shape.
func (r Result) Payload() json.RawMessage {
	switch r.Kind {
	case KindSuccess:
		return r.Value
	case KindDegraded:
		return mustMarshal(fallback{Score: 0, Feedback: r.Raw, Status: StatusPartialSuccess})
	default:
		return mustMarshal(fallback{Score: 0, Feedback: GenericErrorMessage, Status: StatusError})
	}
}

// Assessment decodes a success value. ok is false for the fallback kinds or
// when the model's object does not carry the expected fields' types.
func (r Result) Assessment() (Assessment, bool) {
	var a Assessment
	if r.Kind != KindSuccess {
		return a, false
	}
	if err := json.Unmarshal(r.Value, &a); err != nil {
		return a, false
	}
	return a, true
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// only plain structs of strings and ints reach here
		panic(err)
	}
	return b
}
