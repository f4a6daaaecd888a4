package narrative

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/okian/scoutbrief/pkg/logger"
)

const (
	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-2.5-flash"

	geminiName = "gemini"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	s      *settings
}

// NewGemini creates a Gemini generator. WithEndpoint overrides the API base URL.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrRemote)
	}
	s := newSettings(DefaultGeminiModel, opts)

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %w", ErrRemote, err)
	}
	return &Gemini{client: client, s: s}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, cancel := withTimeout(ctx, g.s.timeout)
	defer cancel()

	start := time.Now()
	defer func() { observe(geminiName, start, err) }()

	resp, err := g.client.Models.GenerateContent(ctx, g.s.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemote, err)
	}
	text = resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrRemote)
	}

	g.s.logger.Debug(ctx, "recommendation generated",
		logger.String("model", g.s.model),
		logger.Int("chars", len(text)),
	)
	return text, nil
}
