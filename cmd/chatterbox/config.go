package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	Port       string `yaml:"port"`
	BackendURL string `yaml:"backendURL"`

	LoadingInterval duration `yaml:"loadingInterval"`
	TypingInterval  duration `yaml:"typingInterval"`
	RequestTimeout  duration `yaml:"requestTimeout"`
}

// duration parses YAML strings like "300ms" into a time.Duration.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = duration(parsed)
	return nil
}

func defaultConfig() config {
	return config{
		Port:            "5173",
		BackendURL:      "http://localhost:5174",
		LoadingInterval: duration(300 * time.Millisecond),
		TypingInterval:  duration(20 * time.Millisecond),
		RequestTimeout:  duration(30 * time.Second),
	}
}

// loadConfig reads the YAML config at path over the defaults. A missing file
// is not an error; the defaults serve.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return config{}, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("error decoding config file: %w", err)
	}

	if cfg.Port == "" {
		return config{}, fmt.Errorf("port is required")
	}
	if cfg.BackendURL == "" {
		return config{}, fmt.Errorf("backendURL is required")
	}

	return cfg, nil
}
