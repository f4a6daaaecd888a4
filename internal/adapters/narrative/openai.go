package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/scoutbrief/pkg/logger"
)

const (
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "google/gemini-3.0-pro"

	openAIName   = "openai"
	maxErrorBody = 2048
)

// OpenAI calls an OpenAI-compatible chat-completions endpoint.
type OpenAI struct {
	s *settings
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAI creates an OpenAI-compatible generator.
func NewOpenAI(opts ...Option) *OpenAI {
	return &OpenAI{s: newSettings(DefaultOpenAIModel, opts)}
}

// Generate sends prompt as a single user message and returns the first
// choice's content. Non-200 answers fail with ErrRemote carrying the status
// and body.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (text string, err error) {
	if o.s.endpoint == "" {
		return "", fmt.Errorf("%w: no endpoint configured", ErrRemote)
	}
	ctx, cancel := withTimeout(ctx, o.s.timeout)
	defer cancel()

	start := time.Now()
	defer func() { observe(openAIName, start, err) }()

	payload, err := json.Marshal(chatRequest{
		Model:    o.s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrRemote, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.s.apiKey)
	}

	resp, err := o.s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: %d - %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrRemote, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrRemote)
	}

	o.s.logger.Debug(ctx, "recommendation generated",
		logger.String("model", o.s.model),
		logger.Int("chars", len(cr.Choices[0].Message.Content)),
	)
	return cr.Choices[0].Message.Content, nil
}
