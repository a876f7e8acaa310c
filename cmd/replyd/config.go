package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mleone10/chatterbox/internal/services"
)

type replierConfig interface {
	replier(systemPrompt string) (replier, error)
}

// BaseProviderConfig contains the common fields for all provider
// configurations.
type BaseProviderConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type config struct {
	Port         string        `yaml:"port"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Replier      replierConfig `yaml:"replier"`
}

type staticConfig struct {
	BaseProviderConfig `yaml:",inline"`
	Reply              string `yaml:"reply"`
}

type ollamaConfig struct {
	BaseProviderConfig `yaml:",inline"`
	Host               string `yaml:"host"`
}

type openAIConfig struct {
	BaseProviderConfig `yaml:",inline"`
	APIKey             string `yaml:"apiKey"`
}

func (c *config) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig struct {
		Port         string         `yaml:"port"`
		SystemPrompt string         `yaml:"systemPrompt"`
		Replier      map[string]any `yaml:"replier"`
	}

	if err := value.Decode(&rawConfig); err != nil {
		return err
	}

	c.Port = rawConfig.Port
	c.SystemPrompt = rawConfig.SystemPrompt

	provider, ok := rawConfig.Replier["provider"].(string)
	if !ok {
		return fmt.Errorf("replier provider is required")
	}

	replierRawYAML, err := yaml.Marshal(rawConfig.Replier)
	if err != nil {
		return err
	}

	var rc replierConfig
	switch provider {
	case "static":
		rc = &staticConfig{}
	case "ollama":
		rc = &ollamaConfig{}
	case "openai":
		rc = &openAIConfig{}
	default:
		return fmt.Errorf("unknown replier provider: %s", provider)
	}

	if err := yaml.Unmarshal(replierRawYAML, rc); err != nil {
		return err
	}

	c.Replier = rc

	return nil
}

func (s staticConfig) replier(string) (replier, error) {
	return services.NewStatic(s.Reply), nil
}

func (o ollamaConfig) replier(systemPrompt string) (replier, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	host := o.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	return services.NewOllama(host, o.Model, systemPrompt), nil
}

func (o openAIConfig) replier(systemPrompt string) (replier, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return services.NewOpenAI(apiKey, o.Model, systemPrompt, logger), nil
}
