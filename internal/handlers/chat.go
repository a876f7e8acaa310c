package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tmaxmax/go-sse"

	"github.com/mleone10/chatterbox/internal/animate"
	"github.com/mleone10/chatterbox/internal/backend"
	"github.com/mleone10/chatterbox/internal/models"
)

// failureText is the fixed placeholder text shown when a submission ends in
// an error. The raw error detail travels separately on the alert channel.
const failureText = "Something went wrong"

// HandleChat processes one prompt submission. It validates the prompt,
// appends the user's message and an empty assistant placeholder to the
// transcript, writes both fragments to the response for immediate display,
// and resolves the placeholder asynchronously: loading dots while the
// backend call is in flight, then either a character-by-character reveal of
// the reply or the failure text.
//
// Each submission gets its own placeholder ID, SSE topic, and animator
// handles, so overlapping submissions never touch each other's content.
func (m Main) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		m.logger.Error("Prompt is required")
		http.Error(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	um := models.Message{
		ID:        models.NewMessageID(),
		Role:      models.RoleUser,
		Text:      prompt,
		Timestamp: time.Now(),
		State:     models.StateResolved,
	}
	if _, err := m.store.AddMessage(r.Context(), um); err != nil {
		m.logger.Error("Failed to add user message", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// The placeholder starts empty; everything it ever shows arrives as
	// animation frames on its own topic.
	am := models.Message{
		ID:        models.NewMessageID(),
		Role:      models.RoleAssistant,
		Timestamp: time.Now(),
		State:     models.StatePending,
	}
	if _, err := m.store.AddMessage(r.Context(), am); err != nil {
		m.logger.Error("Failed to add placeholder", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	go m.resolve(am, prompt)

	userFrag, err := m.renderer.Message(um)
	if err != nil {
		m.logger.Error("Failed to render user message", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	placeholderFrag, err := m.renderer.Message(am)
	if err != nil {
		m.logger.Error("Failed to render placeholder", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := w.Write([]byte(userFrag + placeholderFrag)); err != nil {
		m.logger.Error("Failed to write fragments", slog.String(errLoggerKey, err.Error()))
	}
}

// resolve drives one placeholder from pending to a terminal state. The
// loading animator is stopped before any reply or error text is written, on
// every path.
func (m Main) resolve(am models.Message, prompt string) {
	logger := m.logger.With(slog.String("messageID", am.ID))
	topic := messageIDTopic(am.ID)

	defer func() {
		e := &sse.Message{Type: closeMessageSSEType}
		e.AppendData("bye")
		_ = m.sseSrv.Publish(e, topic)
	}()

	loading := animate.StartLoading(m.loadingInterval, func(frame string) {
		m.publish(topic, &sse.Message{Type: messagesSSEType}, m.renderer.Text(frame))
	})

	ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout)
	defer cancel()

	reply, err := m.backend.Generate(ctx, prompt)

	loading.Stop()

	if err != nil {
		m.fail(am, err, logger)
		return
	}

	am.Text = reply
	am.State = models.StateTyping
	if err := m.store.UpdateMessage(context.Background(), am); err != nil {
		logger.Error("Failed to update message", slog.String(errLoggerKey, err.Error()))
	}

	typing := animate.StartTyping(reply, m.typingInterval, func(frame string) {
		m.publish(topic, &sse.Message{Type: messagesSSEType}, m.renderer.Text(frame))
	})
	<-typing.Done()

	am.State = models.StateResolved
	if err := m.store.UpdateMessage(context.Background(), am); err != nil {
		logger.Error("Failed to update message", slog.String(errLoggerKey, err.Error()))
	}

	// The last frame upgrades the plain reveal to rendered markdown.
	final, err := m.renderer.Markdown(reply)
	if err != nil {
		logger.Error("Failed to render markdown", slog.String(errLoggerKey, err.Error()))
		final = template.HTML(m.renderer.Text(reply))
	}
	m.publish(topic, &sse.Message{Type: messagesSSEType}, string(final))
}

// fail moves the placeholder to its failed state: fixed text in the
// transcript, the raw error detail on the blocking alert channel.
func (m Main) fail(am models.Message, cause error, logger *slog.Logger) {
	logger.Error("Reply failed", slog.String(errLoggerKey, cause.Error()))

	am.Text = failureText
	am.State = models.StateFailed
	if err := m.store.UpdateMessage(context.Background(), am); err != nil {
		logger.Error("Failed to update message", slog.String(errLoggerKey, err.Error()))
	}

	topic := messageIDTopic(am.ID)
	m.publish(topic, &sse.Message{Type: messagesSSEType}, m.renderer.Text(failureText))

	detail := cause.Error()
	var serverErr *backend.ServerError
	if errors.As(cause, &serverErr) {
		detail = serverErr.Body
	}
	m.publish(topic, &sse.Message{Type: alertSSEType}, detail)
}
