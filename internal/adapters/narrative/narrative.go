// Package narrative turns a briefing prompt into a drive-coach recommendation
// using a hosted language model.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/scoutbrief/internal/config"
	"github.com/okian/scoutbrief/pkg/logger"
	"github.com/okian/scoutbrief/pkg/metrics"
)

// Sentinel kinds for narrative generation.
var (
	// ErrRemote covers transport failures and unusable model responses.
	ErrRemote = errors.New("narrative request failed")
	// ErrDisabled is returned by the no-op generator.
	ErrDisabled = errors.New("narrative generation disabled")
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the generator selected by cfg.NarrativeProvider.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	l := logger.Get().Named("narrative")
	switch strings.ToLower(cfg.NarrativeProvider) {
	case config.ProviderOpenAI:
		return NewOpenAI(
			WithEndpoint(cfg.AIProxyURL),
			WithAPIKey(cfg.AIProxyKey),
			WithModel(cfg.AIModel),
			WithTimeout(cfg.RequestTimeout()),
			WithLogger(l),
		), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey,
			WithModel(cfg.GeminiModel),
			WithTimeout(cfg.RequestTimeout()),
			WithLogger(l),
		)
	case config.ProviderNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown narrative provider %q", config.ErrInvalidConfig, cfg.NarrativeProvider)
	}
}

// Disabled is a Generator that always fails with ErrDisabled.
type Disabled struct{}

// Generate implements Generator.
func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}

// settings is shared by the remote generators.
type settings struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
	http     *http.Client
	logger   logger.Logger
}

// observe records the latency and outcome of one remote call.
func observe(collaborator string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordRemoteCall(collaborator, outcome, float64(time.Since(start).Milliseconds()))
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
