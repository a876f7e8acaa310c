package models

import "time"

// Message represents an individual entry in the chat transcript. It carries a
// unique identifier, the participant's role, the visible text, and the time
// the message was created. Assistant messages additionally track the pending
// state so the UI knows whether the reply is still being produced.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time

	State PendingState
}

// Role represents the role of a message participant.
type Role string

// PendingState tracks where an assistant message is in its lifecycle, from
// the empty placeholder up to the terminal resolved or failed states. User
// messages are created already resolved.
type PendingState string

const (
	// RoleUser represents a message typed by the user.
	RoleUser Role = "user"
	// RoleAssistant represents a reply produced by the backend.
	RoleAssistant Role = "assistant"

	// StatePending marks a placeholder awaiting its reply; the loading
	// indicator runs while a message is in this state.
	StatePending PendingState = "pending"
	// StateTyping marks a reply that arrived and is being revealed.
	StateTyping PendingState = "typing"
	// StateResolved marks a fully shown message. Terminal.
	StateResolved PendingState = "resolved"
	// StateFailed marks a submission that ended in an error. Terminal.
	StateFailed PendingState = "failed"
)

// Terminal reports whether the state accepts no further transitions.
func (s PendingState) Terminal() bool {
	return s == StateResolved || s == StateFailed
}
