package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chatterbox "github.com/mleone10/chatterbox"
	"github.com/mleone10/chatterbox/internal/backend"
	"github.com/mleone10/chatterbox/internal/handlers"
	"github.com/mleone10/chatterbox/internal/store"
)

func main() {
	cfgPath := "chatterbox.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	client := backend.NewClient(cfg.BackendURL, logger)

	m, err := handlers.NewMain(client, store.NewMemory(), logger, handlers.Options{
		LoadingInterval: time.Duration(cfg.LoadingInterval),
		TypingInterval:  time.Duration(cfg.TypingInterval),
		RequestTimeout:  time.Duration(cfg.RequestTimeout),
	})
	if err != nil {
		log.Fatal(fmt.Errorf("error creating handlers: %w", err))
	}

	// Serve static files
	staticFS, err := fs.Sub(chatterbox.StaticFS, "static")
	if err != nil {
		log.Fatal(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))
	mux.HandleFunc("/", m.HandleHome)
	mux.HandleFunc("/chat", m.HandleChat)
	mux.HandleFunc("/sse/messages", m.HandleSSE)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv.RegisterOnShutdown(func() {
		if err := m.Shutdown(context.Background()); err != nil {
			log.Printf("Failed to shutdown sse server: %v", err)
		}
	})

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		log.Println("Widget server starting on :" + cfg.Port)
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
