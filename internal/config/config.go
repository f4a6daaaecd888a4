// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Credentials and file locations are never compiled in; they arrive through
//   the environment, an optional .env file or an optional YAML file.
// - All loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"time"
)

// Narrative provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CSVPath points at the scouting log.
	CSVPath string `koanf:"csv_path"`

	// TBABaseURL and TBAKey configure The Blue Alliance roster lookup.
	// An empty key disables the lookup and the local log is used directly.
	TBABaseURL string `koanf:"tba_base_url"`
	TBAKey     string `koanf:"tba_key"`

	// NarrativeProvider selects the recommendation generator: openai, gemini or none.
	NarrativeProvider string `koanf:"narrative_provider"`

	// AIProxyURL, AIProxyKey and AIModel configure the OpenAI-compatible endpoint.
	AIProxyURL string `koanf:"ai_proxy_url"`
	AIProxyKey string `koanf:"ai_proxy_key"`
	AIModel    string `koanf:"ai_model"`

	// GeminiAPIKey and GeminiModel configure the Gemini provider.
	GeminiAPIKey string `koanf:"gemini_api_key"`
	GeminiModel  string `koanf:"gemini_model"`

	// RulesPath optionally replaces the embedded game rules block.
	RulesPath string `koanf:"rules_path"`

	// RequestTimeoutMS bounds each remote call. Zero leaves the transport default.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New returns a Config populated with defaults. The context is reserved for
// future use and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		CSVPath:           "scouting.csv",
		TBABaseURL:        "https://www.thebluealliance.com/api/v3",
		NarrativeProvider: ProviderOpenAI,
		AIProxyURL:        "https://ai.hackclub.com/proxy/v1/chat/completions",
		AIModel:           "google/gemini-3.0-pro",
		GeminiModel:       "gemini-2.5-flash",
	}
}

// RequestTimeout returns the remote call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}
