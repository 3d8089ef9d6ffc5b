package factcheck

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ppiankov/realitycheck/internal/model"
)

const validReply = `{
  "overallVerdict": "MIXED",
  "overallConfidence": 72,
  "overallSummary": "One claim holds, one does not.",
  "claims": [
    {
      "text": "Water boils at 100C at sea level.",
      "verdict": "TRUE",
      "confidence": 95,
      "explanation": "Standard physical property.",
      "sources": [
        {"title": "Physics textbook", "url": "General Knowledge", "excerpt": ""}
      ]
    },
    {
      "text": "The moon is made of cheese.",
      "verdict": "FALSE",
      "confidence": 99,
      "explanation": "Lunar samples are rock.",
      "sources": [
        {"title": "NASA", "url": "https://nasa.gov/moon", "excerpt": "Apollo samples"}
      ]
    }
  ]
}`

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without newline", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"prose stays", "Here you go:\n```json\n{\"a\":1}\n```", "Here you go:\n{\"a\":1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	parsed, err := Parse("```json\n" + validReply + "\n```")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := parsed.Result
	if r.OverallVerdict != model.VerdictMixed {
		t.Errorf("Expected MIXED, got %s", r.OverallVerdict)
	}
	if r.OverallConfidence != 72 {
		t.Errorf("Expected confidence 72, got %d", r.OverallConfidence)
	}
	if len(r.Claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(r.Claims))
	}
	if r.Claims[1].Sources[0].URL != "https://nasa.gov/moon" {
		t.Errorf("Unexpected source url: %s", r.Claims[1].Sources[0].URL)
	}

	// Raw must decode to the same document as the reply
	var want, got map[string]any
	_ = json.Unmarshal([]byte(validReply), &want)
	if err := json.Unmarshal(parsed.Raw, &got); err != nil {
		t.Fatalf("Raw is not valid JSON: %v", err)
	}
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Errorf("Raw differs from reply:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestParse_KeepsUnknownFieldsInRaw(t *testing.T) {
	parsed, err := Parse(`{"overallVerdict":"TRUE","overallConfidence":80,"overallSummary":"ok","claims":[],"notes":"extra"}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var doc map[string]any
	_ = json.Unmarshal(parsed.Raw, &doc)
	if doc["notes"] != "extra" {
		t.Errorf("Expected unknown field to survive in Raw, got %v", doc)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"fences only", "```json\n```"},
		{"prose", "I cannot fact-check this text."},
		{"truncated", `{"overallVerdict": "TRUE", "claims": [`},
		{"array", `[{"overallVerdict":"TRUE"}]`},
		{"missing verdict", `{"overallConfidence": 50, "claims": []}`},
		{"unknown verdict", `{"overallVerdict": "PARTLY", "claims": []}`},
		{"mixed claim", `{"overallVerdict": "MIXED", "claims": [{"text":"x","verdict":"MIXED","confidence":5}]}`},
		{"confidence out of range", `{"overallVerdict": "TRUE", "overallConfidence": 150, "claims": []}`},
		{"trailing text", `{"overallVerdict": "TRUE"} and more`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.reply)
			if err == nil {
				t.Fatalf("Expected parse error, got %+v", parsed)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if parseErr.Reply != tt.reply {
				t.Errorf("Expected raw reply to be kept, got %q", parseErr.Reply)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	got := UserMessage("The sky is green.")
	want := "Analyze this text and extract all factual claims:\n\nThe sky is green."
	if got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}
