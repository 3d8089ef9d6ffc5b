package client

import (
	"context"
	"errors"
	"sync"
)

// GenericFailure is shown when a failure carries no endpoint message
const GenericFailure = "Failed to analyze content. Please try again."

// ErrBusy is returned when a submission arrives while another is in flight
var ErrBusy = errors.New("an analysis is already in progress")

// Analyzer submits text for analysis. *Client is the remote implementation.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Response, error)
}

// Notifier surfaces transient messages to the user
type Notifier interface {
	Error(msg string)
	Success(msg string)
}

// Session gates submissions and holds the displayed result. At most one
// request is in flight; a failed request leaves the previous result in place.
type Session struct {
	analyzer  Analyzer
	notifier  Notifier
	minLength int

	mu      sync.Mutex
	loading bool
	current *Response
}

// NewSession creates a session
func NewSession(analyzer Analyzer, notifier Notifier, minLength int) *Session {
	return &Session{
		analyzer:  analyzer,
		notifier:  notifier,
		minLength: minLength,
	}
}

// Loading reports whether a request is in flight
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Current returns the displayed result, nil before the first success
func (s *Session) Current() *Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Submit validates text, sends it and updates the displayed result
func (s *Session) Submit(ctx context.Context, text string) error {
	trimmed, err := ValidateInput(text, s.minLength)
	if err != nil {
		s.notifier.Error(err.Error())
		return err
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	resp, err := s.analyzer.Analyze(ctx, trimmed)
	if err != nil {
		msg := GenericFailure
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		s.notifier.Error(msg)
		return err
	}

	s.mu.Lock()
	s.current = resp
	s.mu.Unlock()

	s.notifier.Success("Analysis complete!")
	return nil
}
