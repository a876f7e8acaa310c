package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mleone10/chatterbox/internal/render"
)

// HandleHome serves the chat page with the session's transcript so a
// reconnecting tab picks up where it left off. Placeholders still pending
// resubscribe to their topics from the browser glue.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	messages, err := m.store.Messages(r.Context())
	if err != nil {
		m.logger.Error("Failed to get messages", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fragments := make([]template.HTML, 0, len(messages))
	for _, msg := range messages {
		frag, err := m.renderer.Message(msg)
		if err != nil {
			m.logger.Error("Failed to render message",
				slog.String("messageID", msg.ID),
				slog.String(errLoggerKey, err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fragments = append(fragments, template.HTML(frag))
	}

	if err := m.renderer.Home(w, render.HomeData{Messages: fragments}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
