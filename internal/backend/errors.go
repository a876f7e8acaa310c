package backend

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when Generate is handed a prompt that is empty
// after trimming. The caller is expected to reject such prompts before any
// request is made; this sentinel is the safety net.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// ServerError reports a non-2xx response from the collaborator. Body holds
// the raw response text so the UI can surface it to the user verbatim.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// MalformedError reports a 2xx response whose body could not be interpreted:
// either it was not valid JSON or the required "bot" field was missing. Err
// carries the decode error when one exists.
type MalformedError struct {
	Body string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed backend response: %v", e.Err)
	}
	return "malformed backend response: missing bot field"
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
