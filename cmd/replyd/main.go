// Command replyd is the reference reply collaborator: it answers
// POST {"prompt"} with {"bot"} using a configured provider. The widget
// server treats it as an opaque HTTP endpoint; any server speaking the same
// two-field contract can replace it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

type replier interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

const replyTimeout = 60 * time.Second

func main() {
	cfgPath := "replyd.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		log.Fatal(fmt.Errorf("error opening config file: %w", err))
	}
	defer cfgFile.Close()

	cfg := config{}
	if err := yaml.NewDecoder(cfgFile).Decode(&cfg); err != nil {
		log.Fatal(fmt.Errorf("error decoding config file: %w", err))
	}
	if cfg.Port == "" {
		cfg.Port = "5174"
	}

	rep, err := cfg.Replier.replier(cfg.SystemPrompt)
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlePrompt(rep))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Println("Reply server starting on :" + cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Printf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Start shutdown, signal: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
			if err := srv.Close(); err != nil {
				log.Printf("Forcing server close: %v", err)
			}
		}
	}
}

// handlePrompt answers one prompt request. Error bodies are plain text on
// purpose: the widget surfaces them to the user verbatim.
func handlePrompt(rep replier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.Error("Failed to decode request", slog.String("err", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(body.Prompt) == "" {
			http.Error(w, "prompt is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), replyTimeout)
		defer cancel()

		reply, err := rep.Reply(ctx, body.Prompt)
		if err != nil {
			logger.Error("Provider failed", slog.String("err", err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"bot": reply}); err != nil {
			logger.Error("Failed to encode response", slog.String("err", err.Error()))
		}
	}
}
