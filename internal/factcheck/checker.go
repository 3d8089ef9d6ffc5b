package factcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ppiankov/realitycheck/internal/llm"
	"github.com/ppiankov/realitycheck/internal/model"
)

var (
	// ErrTextRequired is returned for an empty input text
	ErrTextRequired = errors.New("text is required")

	// ErrRateLimited is returned when the upstream API answers 429
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrPaymentRequired is returned when the upstream API answers 402
	ErrPaymentRequired = errors.New("upstream payment required")
)

// UpstreamError is an unclassified non-success reply from the upstream API
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI Gateway error: %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Outcome is the result of one fact-check. Fallback is set when the model
// reply could not be parsed and Result was built by Fallback instead.
type Outcome struct {
	Result     *model.AnalysisResult
	Raw        json.RawMessage // Upstream JSON, nil on fallback
	Fallback   bool
	ParseErr   *ParseError
	Model      string
	TokensUsed int
}

// Body returns the JSON to send to the caller: the upstream object verbatim
// when it parsed, the encoded fallback otherwise.
func (o *Outcome) Body() ([]byte, error) {
	if len(o.Raw) > 0 {
		return o.Raw, nil
	}
	return json.Marshal(o.Result)
}

// Checker runs the single prompt-and-parse round trip
type Checker struct {
	provider    llm.Provider
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// NewChecker creates a checker using the given provider and completion settings
func NewChecker(provider llm.Provider, cfg model.LLMConfig, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		provider:    provider,
		model:       llm.ConfigFromModel(cfg).Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// ProviderName returns the name of the underlying provider
func (c *Checker) ProviderName() string {
	return c.provider.Name()
}

// Ping reports whether the upstream API is reachable with the configured credentials
func (c *Checker) Ping(ctx context.Context) bool {
	return c.provider.IsAvailable(ctx)
}

// Check submits text to the model once and returns the parsed result or the
// fallback. Upstream 429 and 402 map to ErrRateLimited and ErrPaymentRequired,
// other non-success statuses to *UpstreamError.
func (c *Checker) Check(ctx context.Context, text string) (*Outcome, error) {
	if text == "" {
		return nil, ErrTextRequired
	}

	c.logger.Info("fact-checking text", "preview", truncateRunes(text, 100)+"...")

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      SystemPrompt,
		User:        UserMessage(text),
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, c.classify(err)
	}

	c.logger.Debug("model reply", "model", resp.Model, "tokens", resp.TokensUsed, "reply", resp.Content)

	outcome := &Outcome{Model: resp.Model, TokensUsed: resp.TokensUsed}

	parsed, err := Parse(resp.Content)
	var parseErr *ParseError
	switch {
	case errors.As(err, &parseErr):
		c.logger.Warn("failed to parse model reply, returning fallback", "error", parseErr.Err, "raw", parseErr.Reply)
		outcome.Result = Fallback(text)
		outcome.Fallback = true
		outcome.ParseErr = parseErr
	case err != nil:
		return nil, err
	default:
		outcome.Result = parsed.Result
		outcome.Raw = parsed.Raw
	}

	return outcome, nil
}

func (c *Checker) classify(err error) error {
	code, ok := llm.StatusCode(err)
	if !ok {
		c.logger.Error("completion request failed", "provider", c.provider.Name(), "error", err)
		return fmt.Errorf("completion request: %w", err)
	}

	c.logger.Error("AI gateway error", "provider", c.provider.Name(), "status", code, "error", err)

	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %w", ErrPaymentRequired, err)
	default:
		return &UpstreamError{StatusCode: code, Err: err}
	}
}
