package animate

import (
	"strings"
	"sync"
	"time"
)

// Loading is a handle to a running ellipsis animation. It keeps cycling until
// Stop is called; unlike Typing it never terminates on its own, so every
// submission path is responsible for stopping it exactly when the reply (or
// the error) arrives.
type Loading struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartLoading begins the ellipsis cycle on frame. The target is cleared
// immediately, then one dot is appended per interval. After the third dot
// the cycle starts over from the empty frame, so one full cycle takes four
// intervals. An interval of zero or less falls back to
// DefaultLoadingInterval.
func StartLoading(interval time.Duration, frame FrameFunc) *Loading {
	if interval <= 0 {
		interval = DefaultLoadingInterval
	}

	l := &Loading{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	frame("")

	go func() {
		defer close(l.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		dots := 0
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				dots = (dots + 1) % 4
				frame(strings.Repeat(".", dots))
			}
		}
	}()

	return l
}

// Stop halts the animation. It is idempotent and blocks until the tick
// goroutine has exited, so once Stop returns no further frame can be
// delivered and the target is free for the typing animator or the error
// text.
func (l *Loading) Stop() {
	l.once.Do(func() {
		close(l.stop)
	})
	<-l.done
}
