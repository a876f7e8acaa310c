// Package backend holds the HTTP client for the reply collaborator: a single
// POST carrying {"prompt"} answered by {"bot"}, plus the error taxonomy the
// submission flow branches on.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Client issues prompt requests against a configured collaborator endpoint.
// It sends no credentials; if the collaborator needs any, they belong on its
// side, never in the browser-facing service.
type Client struct {
	endpoint string

	httpClient *http.Client
	logger     *slog.Logger
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type promptResponse struct {
	// A pointer distinguishes a missing field from an intentionally empty
	// reply.
	Bot *string `json:"bot"`
}

// NewClient creates a Client for the given endpoint URL.
func NewClient(endpoint string, logger *slog.Logger) Client {
	return Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger.With(slog.String("module", "backend")),
	}
}

// Generate sends prompt to the collaborator and returns the reply text with
// trailing whitespace trimmed; leading whitespace is preserved. Failures map
// onto the taxonomy in this package: ErrEmptyPrompt before any request is
// made, *ServerError for non-2xx statuses, *MalformedError for unusable 2xx
// bodies, and wrapped transport errors for requests that never complete.
func (c Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	body, err := json.Marshal(promptRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending prompt", slog.String("endpoint", c.endpoint))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return "", &ServerError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	var rep promptResponse
	if err := json.Unmarshal(raw, &rep); err != nil {
		return "", &MalformedError{Body: string(raw), Err: err}
	}
	if rep.Bot == nil {
		return "", &MalformedError{Body: string(raw)}
	}

	return strings.TrimRight(*rep.Bot, " \t\r\n"), nil
}
