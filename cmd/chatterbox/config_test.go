package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chatterbox.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Port != "5173" {
		t.Errorf("Port = %q, want %q", cfg.Port, "5173")
	}
	if time.Duration(cfg.LoadingInterval) != 300*time.Millisecond {
		t.Errorf("LoadingInterval = %v, want 300ms", time.Duration(cfg.LoadingInterval))
	}
	if time.Duration(cfg.TypingInterval) != 20*time.Millisecond {
		t.Errorf("TypingInterval = %v, want 20ms", time.Duration(cfg.TypingInterval))
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
backendURL: http://replies.internal:9000
loadingInterval: 150ms
typingInterval: 5ms
requestTimeout: 10s
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.BackendURL != "http://replies.internal:9000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if time.Duration(cfg.LoadingInterval) != 150*time.Millisecond {
		t.Errorf("LoadingInterval = %v, want 150ms", time.Duration(cfg.LoadingInterval))
	}
	if time.Duration(cfg.RequestTimeout) != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", time.Duration(cfg.RequestTimeout))
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := writeConfig(t, "loadingInterval: fast\n")

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() expected error for invalid duration")
	}
}
