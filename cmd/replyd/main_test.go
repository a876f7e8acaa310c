package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type mockReplier struct {
	reply string
	err   error
}

func (m mockReplier) Reply(context.Context, string) (string, error) {
	return m.reply, m.err
}

func TestHandlePrompt(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		replier    mockReplier
		wantStatus int
		wantBot    string
	}{
		{
			name:       "Invalid method",
			method:     http.MethodGet,
			body:       `{"prompt": "hi"}`,
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "Invalid body",
			method:     http.MethodPost,
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Empty prompt",
			method:     http.MethodPost,
			body:       `{"prompt": "  "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Provider failure",
			method:     http.MethodPost,
			body:       `{"prompt": "hi"}`,
			replier:    mockReplier{err: errors.New("model offline")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "Success",
			method:     http.MethodPost,
			body:       `{"prompt": "hi"}`,
			replier:    mockReplier{reply: "hello there"},
			wantStatus: http.StatusOK,
			wantBot:    "hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handlePrompt(tt.replier)(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("handlePrompt() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantBot == "" {
				return
			}

			var body struct {
				Bot string `json:"bot"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Bot != tt.wantBot {
				t.Errorf("bot = %q, want %q", body.Bot, tt.wantBot)
			}
		})
	}
}

func TestConfigProviderSwitch(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "Static provider",
			yaml: "port: \"5174\"\nreplier:\n  provider: static\n  reply: canned\n",
		},
		{
			name: "Ollama provider",
			yaml: "port: \"5174\"\nreplier:\n  provider: ollama\n  host: http://localhost:11434\n  model: llama3\n",
		},
		{
			name: "OpenAI provider",
			yaml: "port: \"5174\"\nreplier:\n  provider: openai\n  apiKey: sk-test\n  model: gpt-4o-mini\n",
		},
		{
			name:    "Unknown provider",
			yaml:    "port: \"5174\"\nreplier:\n  provider: carrier-pigeon\n",
			wantErr: true,
		},
		{
			name:    "Missing provider",
			yaml:    "port: \"5174\"\nreplier:\n  model: llama3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config
			err := yaml.Unmarshal([]byte(tt.yaml), &cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Unmarshal() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			rep, err := cfg.Replier.replier("be nice")
			if err != nil {
				t.Fatalf("replier() error = %v", err)
			}
			if rep == nil {
				t.Error("replier() returned nil")
			}
		})
	}
}

func TestOllamaConfigRequiresModel(t *testing.T) {
	c := ollamaConfig{}
	if _, err := c.replier(""); err == nil {
		t.Error("replier() expected error for missing model")
	}
}

func TestOpenAIConfigRequiresModel(t *testing.T) {
	c := openAIConfig{}
	if _, err := c.replier(""); err == nil {
		t.Error("replier() expected error for missing model")
	}
}
