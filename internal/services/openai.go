package services

import (
	"context"
	"fmt"
	"log/slog"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAI answers prompts with a single chat completion from the OpenAI API.
type OpenAI struct {
	model        string
	systemPrompt string

	client *goopenai.Client

	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI instance with the specified API key, model
// name, and system prompt.
func NewOpenAI(apiKey, model, systemPrompt string, logger *slog.Logger) OpenAI {
	return OpenAI{
		model:        model,
		systemPrompt: systemPrompt,
		client:       goopenai.NewClient(apiKey),
		logger:       logger.With(slog.String("module", "openai")),
	}
}

// Reply sends the prompt to the model and returns the first choice's
// content.
func (o OpenAI) Reply(ctx context.Context, prompt string) (string, error) {
	msgs := make([]goopenai.ChatCompletionMessage, 0, 2)
	if o.systemPrompt != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: o.systemPrompt,
		})
	}
	msgs = append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	o.logger.Debug("Requesting completion", slog.String("model", o.model))

	res, err := o.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    o.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	return res.Choices[0].Message.Content, nil
}
