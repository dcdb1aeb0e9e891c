package llm

import (
	"errors"
	"fmt"
)

// ErrNoOutput means the provider answered successfully but produced no
// candidate, content or part to read text from.
var ErrNoOutput = errors.New("llm: no usable output produced")

// StatusError is a non-success response from the provider. Body is kept for
// diagnostics and must not reach end users.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}
