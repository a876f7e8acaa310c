package animate

import (
	"sync"
	"time"
)

// Typing is a handle to a running character-reveal animation. It is the one
// self-terminating effect: the timer is released automatically once the full
// text has been revealed. Stop cancels an in-flight reveal early.
type Typing struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartTyping reveals fullText on frame one character per interval, each
// frame a growing prefix of the text. Characters are runes, so multi-byte
// text never produces broken frames. An interval of zero or less falls back
// to DefaultTypingInterval.
//
// Starting a second reveal against the same target without stopping the
// first interleaves their frames; callers hold one handle per target.
func StartTyping(fullText string, interval time.Duration, frame FrameFunc) *Typing {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}

	t := &Typing{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	runes := []rune(fullText)

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := range runes {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				frame(string(runes[:i+1]))
			}
		}
	}()

	return t
}

// Done is closed once the full text has been revealed or the animation was
// stopped. Callers wait on it to learn the placeholder reached its final
// content.
func (t *Typing) Done() <-chan struct{} {
	return t.done
}

// Stop cancels the reveal. Idempotent, safe after completion, and blocks
// until the tick goroutine has exited.
func (t *Typing) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})
	<-t.done
}
