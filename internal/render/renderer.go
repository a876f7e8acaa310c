// Package render builds the HTML fragments shown in the chat transcript.
// Everything that reaches the browser goes through html/template escaping;
// resolved assistant text is additionally rendered from markdown.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	highlighting "github.com/yuin/goldmark-highlighting"

	"github.com/mleone10/chatterbox/internal/models"
)

// Renderer turns messages into self-contained markup fragments. It is a pure
// transformation of its inputs; appending fragments to the page is the
// caller's business.
type Renderer struct {
	templates *template.Template
	markdown  goldmark.Markdown
}

// messageView is the data handed to the per-message template partials.
type messageView struct {
	ID        string
	Role      string
	Text      string
	HTML      template.HTML
	State     string
	Timestamp time.Time
}

// HomeData carries the already-rendered message fragments for the home page.
type HomeData struct {
	Messages []template.HTML
}

// New parses the page and partial templates from fsys and prepares the
// markdown renderer. Raw HTML inside markdown is not passed through, so a
// reply cannot smuggle markup into the page.
func New(fsys fs.FS) (Renderer, error) {
	tmpl, err := template.ParseFS(
		fsys,
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Renderer{}, fmt.Errorf("error parsing templates: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
	)

	return Renderer{
		templates: tmpl,
		markdown:  md,
	}, nil
}

// Message renders a single chat message into a fragment. User text is
// escaped verbatim; assistant text is escaped while pending or typing and
// rendered as markdown once resolved.
func (r Renderer) Message(msg models.Message) (string, error) {
	view := messageView{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Text:      msg.Text,
		State:     string(msg.State),
		Timestamp: msg.Timestamp,
	}

	name := "user_message"
	if msg.Role == models.RoleAssistant {
		name = "assistant_message"

		if msg.State == models.StateResolved {
			html, err := r.Markdown(msg.Text)
			if err != nil {
				return "", err
			}
			view.HTML = html
		} else {
			view.HTML = template.HTML(r.Text(msg.Text))
		}
	}

	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, name, view); err != nil {
		return "", fmt.Errorf("error executing %s template: %w", name, err)
	}
	return sb.String(), nil
}

// Text escapes a plain-text frame for insertion into a placeholder's text
// container. Animator frames go through here on every tick.
func (r Renderer) Text(text string) string {
	return template.HTMLEscapeString(text)
}

// Markdown renders assistant text to HTML.
func (r Renderer) Markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Home writes the full chat page.
func (r Renderer) Home(w io.Writer, data HomeData) error {
	return r.templates.ExecuteTemplate(w, "home.html", data)
}
