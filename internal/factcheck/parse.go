package factcheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/realitycheck/internal/model"
)

var (
	jsonFence  = regexp.MustCompile("```json\n?")
	plainFence = regexp.MustCompile("```\n?")
)

// ParseError reports a model reply that is not a valid analysis result
type ParseError struct {
	Reply string // Reply as received, for logging
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parsed is a reply that decoded and validated as an analysis result
type Parsed struct {
	Result *model.AnalysisResult
	Raw    json.RawMessage // The cleaned reply, compacted
}

// StripFences removes markdown code-fence markers anywhere in the reply
func StripFences(reply string) string {
	cleaned := jsonFence.ReplaceAllString(reply, "")
	cleaned = plainFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// Parse strips fences and decodes the reply. Any failure is a *ParseError;
// callers choose the fallback path themselves.
func Parse(reply string) (*Parsed, error) {
	cleaned := StripFences(reply)
	if cleaned == "" {
		return nil, &ParseError{Reply: reply, Err: fmt.Errorf("empty reply")}
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ParseError{Reply: reply, Err: err}
	}
	if err := result.Validate(); err != nil {
		return nil, &ParseError{Reply: reply, Err: err}
	}

	var raw bytes.Buffer
	if err := json.Compact(&raw, []byte(cleaned)); err != nil {
		return nil, &ParseError{Reply: reply, Err: err}
	}

	return &Parsed{Result: &result, Raw: raw.Bytes()}, nil
}
