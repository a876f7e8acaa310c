// Package animate implements the two timer-driven effects used on assistant
// placeholders: the ellipsis cycle shown while a reply is pending, and the
// character-by-character reveal of a completed reply.
package animate

import "time"

// FrameFunc receives each animation frame as the complete text the target
// should display. Frames are delivered from the animator's own goroutine;
// implementations must be safe for that.
type FrameFunc func(text string)

const (
	// DefaultLoadingInterval is the period of the ellipsis cycle.
	DefaultLoadingInterval = 300 * time.Millisecond
	// DefaultTypingInterval is the period between revealed characters.
	DefaultTypingInterval = 20 * time.Millisecond
)
