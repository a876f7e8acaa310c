package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmaxmax/go-sse"

	chatterbox "github.com/mleone10/chatterbox"
	"github.com/mleone10/chatterbox/internal/animate"
	"github.com/mleone10/chatterbox/internal/models"
	"github.com/mleone10/chatterbox/internal/render"
)

// Backend produces the reply for a single prompt. It is the external
// collaborator boundary: one request in, one complete reply out.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Store defines the transcript the handlers read and mutate. Messages are
// appended when rendered and updated as their placeholder moves through its
// lifecycle.
type Store interface {
	Messages(ctx context.Context) ([]models.Message, error)
	AddMessage(ctx context.Context, message models.Message) (string, error)
	UpdateMessage(ctx context.Context, message models.Message) error
}

// Options tunes the submission lifecycle. Zero values fall back to the
// reference timings.
type Options struct {
	LoadingInterval time.Duration
	TypingInterval  time.Duration
	RequestTimeout  time.Duration
}

// Main owns the submission lifecycle: it renders messages, runs the
// animators, talks to the backend, and pushes every frame to the browser
// over per-message SSE topics.
type Main struct {
	sseSrv   *sse.Server
	renderer render.Renderer

	backend Backend
	store   Store

	logger *slog.Logger

	loadingInterval time.Duration
	typingInterval  time.Duration
	requestTimeout  time.Duration
}

const errLoggerKey = "err"

// SSE event types pushed to the browser.
var (
	messagesSSEType     = sse.Type("messages")
	alertSSEType        = sse.Type("alert")
	closeMessageSSEType = sse.Type("closeMessage")
	closeChatSSEType    = sse.Type("closeChat")
)

const defaultRequestTimeout = 30 * time.Second

// NewMain creates a Main instance around the given backend and store. It
// parses the embedded templates and configures the SSE server so each client
// subscribes to the default topic plus, when requested, one message-specific
// topic carrying that placeholder's animation frames.
func NewMain(backend Backend, store Store, logger *slog.Logger, opts Options) (Main, error) {
	renderer, err := render.New(chatterbox.TemplateFS)
	if err != nil {
		return Main{}, err
	}

	if opts.LoadingInterval <= 0 {
		opts.LoadingInterval = animate.DefaultLoadingInterval
	}
	if opts.TypingInterval <= 0 {
		opts.TypingInterval = animate.DefaultTypingInterval
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	logger = logger.With(slog.String("module", "handlers"))

	return Main{
		sseSrv: &sse.Server{
			OnSession: func(s *sse.Session) (sse.Subscription, bool) {
				topics := []string{sse.DefaultTopic}

				// A client following one placeholder subscribes to that
				// message's topic only; sibling placeholders stay untouched.
				messageID := s.Req.URL.Query().Get("message_id")
				if messageID != "" {
					topics = append(topics, messageIDTopic(messageID))

					// The resolver may have settled the message before this
					// subscription existed, dropping its frames. Replay the
					// stored state so the placeholder never stays pending.
					replaySettled(s, store, renderer, logger, messageID)
				}

				return sse.Subscription{
					Client:      s,
					LastEventID: s.LastEventID,
					Topics:      topics,
				}, true
			},
		},
		renderer:        renderer,
		backend:         backend,
		store:           store,
		logger:          logger,
		loadingInterval: opts.LoadingInterval,
		typingInterval:  opts.TypingInterval,
		requestTimeout:  opts.RequestTimeout,
	}, nil
}

func messageIDTopic(messageID string) string {
	return fmt.Sprintf("message-%s", messageID)
}

// replaySettled writes a message's terminal state straight to a session that
// subscribed after the resolver finished. Messages still in flight need no
// replay; their frames arrive through the topic.
func replaySettled(s *sse.Session, store Store, renderer render.Renderer, logger *slog.Logger, messageID string) {
	msgs, err := store.Messages(s.Req.Context())
	if err != nil {
		logger.Error("Failed to load messages", slog.String(errLoggerKey, err.Error()))
		return
	}

	for _, msg := range msgs {
		if msg.ID != messageID {
			continue
		}
		if !msg.State.Terminal() {
			return
		}

		data := renderer.Text(msg.Text)
		if msg.State == models.StateResolved {
			if final, err := renderer.Markdown(msg.Text); err == nil {
				data = string(final)
			}
		}

		frame := &sse.Message{Type: messagesSSEType}
		frame.AppendData(data)
		if err := s.Send(frame); err != nil {
			logger.Error("Failed to replay message", slog.String(errLoggerKey, err.Error()))
			return
		}

		bye := &sse.Message{Type: closeMessageSSEType}
		bye.AppendData("bye")
		if err := s.Send(bye); err != nil {
			logger.Error("Failed to replay close", slog.String(errLoggerKey, err.Error()))
			return
		}

		if err := s.Flush(); err != nil {
			logger.Error("Failed to flush replay", slog.String(errLoggerKey, err.Error()))
		}
		return
	}
}

// HandleSSE serves the event stream clients use to receive animation frames
// and alerts.
func (m Main) HandleSSE(w http.ResponseWriter, r *http.Request) {
	m.sseSrv.ServeHTTP(w, r)
}

// publish sends one event to a message topic. Publish failures are logged
// and otherwise ignored; the transcript in the store stays authoritative.
func (m Main) publish(topic string, msg *sse.Message, data string) {
	msg.AppendData(data)

	if err := m.sseSrv.Publish(msg, topic); err != nil {
		m.logger.Error("Failed to publish event",
			slog.String("topic", topic),
			slog.String(errLoggerKey, err.Error()))
	}
}

// Shutdown gracefully terminates the SSE server. It broadcasts a close event
// to all connected clients and waits up to 5 seconds for connections to
// drain before forcing them closed.
func (m Main) Shutdown(ctx context.Context) error {
	e := &sse.Message{Type: closeChatSSEType}
	// The SSE spec requires a data field even on a goodbye.
	e.AppendData("bye")

	_ = m.sseSrv.Publish(e)

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	return m.sseSrv.Shutdown(ctx)
}
