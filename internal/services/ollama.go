package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// Ollama answers prompts with a single non-streaming completion from an
// Ollama server.
type Ollama struct {
	host         string
	model        string
	systemPrompt string

	client *api.Client
}

// NewOllama creates a new Ollama instance with the specified host URL and
// model name. The host parameter should be a valid URL pointing to an Ollama
// server. If the provided host URL is invalid, the function will panic.
func NewOllama(host, model, systemPrompt string) Ollama {
	u, err := url.Parse(host)
	if err != nil {
		panic(err)
	}

	return Ollama{
		host:         host,
		model:        model,
		systemPrompt: systemPrompt,
		client:       api.NewClient(u, &http.Client{}),
	}
}

// Reply sends the prompt to the Ollama model and returns the complete
// response content. The context can be used to cancel an ongoing request.
func (o Ollama) Reply(ctx context.Context, prompt string) (string, error) {
	msgs := make([]api.Message, 0, 2)
	if o.systemPrompt != "" {
		msgs = append(msgs, api.Message{
			Role:    "system",
			Content: o.systemPrompt,
		})
	}
	msgs = append(msgs, api.Message{
		Role:    "user",
		Content: prompt,
	})

	f := false
	req := api.ChatRequest{
		Model:    o.model,
		Messages: msgs,
		Stream:   &f,
	}

	var reply string

	if err := o.client.Chat(ctx, &req, func(res api.ChatResponse) error {
		reply = res.Message.Content
		return nil
	}); err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}

	return reply, nil
}
