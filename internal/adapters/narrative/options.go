package narrative

import (
	"net/http"
	"time"

	"github.com/okian/scoutbrief/pkg/logger"
)

// Option applies a configuration option to a remote generator.
type Option func(*settings)

// WithEndpoint sets the chat-completions URL (OpenAI) or API base URL (Gemini).
func WithEndpoint(u string) Option {
	return func(s *settings) { s.endpoint = u }
}

// WithAPIKey sets the bearer token for the OpenAI-compatible endpoint.
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// WithModel sets the model name.
func WithModel(m string) Option {
	return func(s *settings) {
		if m != "" {
			s.model = m
		}
	}
}

// WithTimeout bounds each generation call. Zero leaves it unbounded.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client used by the OpenAI-compatible generator.
func WithHTTPClient(h *http.Client) Option {
	return func(s *settings) {
		if h != nil {
			s.http = h
		}
	}
}

func newSettings(model string, opts []Option) *settings {
	s := &settings{model: model, http: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("narrative")
	}
	return s
}
