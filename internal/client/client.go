package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/realitycheck/internal/model"
)

// FallbackHeader marks a response carrying the fallback result
const FallbackHeader = "X-Analysis-Fallback"

// APIError is an error reported by the endpoint in the "error" field
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Response is a decoded endpoint reply
type Response struct {
	Result   *model.AnalysisResult
	Raw      json.RawMessage
	Fallback bool
}

// Client calls the fact-check endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the endpoint URL. A zero timeout disables the deadline.
func New(endpoint string, timeoutSeconds int) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// Analyze posts text to the endpoint and decodes the result
func (c *Client) Analyze(ctx context.Context, text string) (*Response, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var reply struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if reply.Error != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: *reply.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	return &Response{
		Result:   &result,
		Raw:      body,
		Fallback: resp.Header.Get(FallbackHeader) == "true",
	}, nil
}
