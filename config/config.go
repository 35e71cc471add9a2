package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains configuration for the ToneLang tool server.
type Config struct {
	OpenAIAPIKey string  `yaml:"openai_api_key"` // OpenAI API key for the correction provider
	GeminiAPIKey string  `yaml:"gemini_api_key"` // Google Gemini API key (optional)
	SentryDSN    string  `yaml:"sentry_dsn"`     // Sentry DSN (optional)
	Environment  string  `yaml:"environment"`    // Sentry environment tag
	ServerName   string  `yaml:"server_name"`    // MCP server implementation name
	Version      string  `yaml:"version"`        // MCP server version string
	ExportBPM    float64 `yaml:"export_bpm"`     // default tempo for SMF export
}

// Load reads an optional YAML config file, then overlays environment
// variables. Env always wins so deployments can override a checked-in file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Environment: "production",
		ServerName:  "tonelang-mcp",
		Version:     "0.1.0",
		ExportBPM:   120,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	overlay(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	overlay(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	overlay(&cfg.SentryDSN, "SENTRY_DSN")
	overlay(&cfg.Environment, "TONELANG_ENV")
	return cfg, nil
}

func overlay(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
