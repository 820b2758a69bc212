// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Completion CompletionConfig
}

type ServerConfig struct {
	Port int
}

type CompletionConfig struct {
	APIKey  string
	BaseURL string // empty means the client default
	Model   string // empty means the client default
	Referer string // sent as HTTP-Referer on outbound calls
	Title   string // sent as X-Title on outbound calls
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 5000,
		},
		Completion: CompletionConfig{
			Referer: "https://github.com/kalambet/docask",
			Title:   "docask",
		},
	}
}

// Load reads configuration from a .env file (if present) and the
// environment. The OpenRouter API key is required: the process refuses to
// start without it.
func Load() (Config, error) {
	// Missing .env is fine; the environment alone may be complete.
	_ = godotenv.Load()
	return loadWith(os.LookupEnv)
}

func loadWith(lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults()

	if v, ok := lookup("OPENROUTER_API_KEY"); ok {
		cfg.Completion.APIKey = v
	}
	if v, ok := lookup("OPENROUTER_BASE_URL"); ok {
		cfg.Completion.BaseURL = v
	}
	if v, ok := lookup("OPENROUTER_MODEL"); ok {
		cfg.Completion.Model = v
	}
	if v, ok := lookup("SITE_URL"); ok && v != "" {
		cfg.Completion.Referer = v
	}
	if v, ok := lookup("SITE_NAME"); ok && v != "" {
		cfg.Completion.Title = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}

	if cfg.Completion.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: OPENROUTER_API_KEY is not set")
	}

	return cfg, nil
}
