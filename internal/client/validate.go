package client

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError is a local input error. The endpoint is never contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateInput trims text and checks it holds at least minLength characters.
// It returns the trimmed text that should be submitted.
func ValidateInput(text string, minLength int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Message: "Please enter some text to analyze"}
	}
	if utf8.RuneCountInString(trimmed) < minLength {
		return "", &ValidationError{Message: fmt.Sprintf("Please enter at least %d characters for meaningful analysis", minLength)}
	}
	return trimmed, nil
}
