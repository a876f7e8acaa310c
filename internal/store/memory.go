// Package store keeps the session's chat transcript. The transcript is
// deliberately in-memory only: nothing survives a process restart, matching
// a widget whose history lives exactly as long as the page it animates.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mleone10/chatterbox/internal/models"
)

// Memory is a mutex-guarded, insertion-ordered message list. It implements
// the handlers.Store interface.
type Memory struct {
	mu       sync.RWMutex
	messages []models.Message
	index    map[string]int
}

// NewMemory creates an empty transcript store.
func NewMemory() *Memory {
	return &Memory{
		index: make(map[string]int),
	}
}

// Messages returns the transcript in insertion order. The returned slice is
// a copy, so callers can iterate it while the transcript keeps growing.
func (s *Memory) Messages(context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages), nil
}

// AddMessage appends a message to the transcript and returns its ID. A
// message arriving without an ID is assigned a fresh one.
func (s *Memory) AddMessage(_ context.Context, message models.Message) (string, error) {
	if message.ID == "" {
		message.ID = models.NewMessageID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index[message.ID] = len(s.messages)
	s.messages = append(s.messages, message)

	return message.ID, nil
}

// UpdateMessage replaces the stored message with the same ID. Updates for
// unknown IDs are silently ignored.
func (s *Memory) UpdateMessage(_ context.Context, message models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[message.ID]
	if !ok {
		return nil
	}
	s.messages[i] = message

	return nil
}
