package services

import (
	"context"
	"fmt"
)

// Static is a canned reply provider for local development: no model, no
// network, answers instantly. With an empty reply it echoes the prompt back.
type Static struct {
	reply string
}

// NewStatic creates a Static provider answering every prompt with reply.
func NewStatic(reply string) Static {
	return Static{reply: reply}
}

// Reply implements the replier contract.
func (s Static) Reply(_ context.Context, prompt string) (string, error) {
	if s.reply != "" {
		return s.reply, nil
	}
	return fmt.Sprintf("You said: %s", prompt), nil
}
