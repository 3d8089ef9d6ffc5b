package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider defines the interface for chat-completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete submits a system and a user message and returns the reply text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a single completion
type CompletionRequest struct {
	// System is the instruction message
	System string

	// User is the user message
	User string

	// Model overrides the configured model when set
	Model string

	// Temperature controls randomness; low values favor deterministic output
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

// CompletionResponse contains the provider's reply
type CompletionResponse struct {
	// Content is the free-text reply
	Content string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the gateway, OpenAI or Anthropic
	APIKey string

	// BaseURL for custom endpoints (gateway, Ollama)
	BaseURL string

	// Timeout for API requests in seconds (0 = no extra deadline)
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// StatusError is returned when the upstream API answers with a non-success status
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the upstream HTTP status from err, if it carries one
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, secondsToDuration(seconds))
}
