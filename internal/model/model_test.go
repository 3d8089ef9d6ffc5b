package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVerdict_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Verdict
		wantErr bool
	}{
		{`"TRUE"`, VerdictTrue, false},
		{`"FALSE"`, VerdictFalse, false},
		{`"MIXED"`, VerdictMixed, false},
		{`"UNCERTAIN"`, VerdictUncertain, false},
		{`"true"`, "", true},
		{`"PARTLY"`, "", true},
		{`42`, "", true},
	}

	for _, tt := range tests {
		var v Verdict
		err := json.Unmarshal([]byte(tt.input), &v)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && v != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, v, tt.want)
		}
	}
}

func TestClaimVerdict_RejectsMixed(t *testing.T) {
	var v ClaimVerdict
	if err := json.Unmarshal([]byte(`"MIXED"`), &v); err == nil {
		t.Fatal("expected MIXED to be rejected at claim level")
	}

	if err := json.Unmarshal([]byte(`"UNCERTAIN"`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != ClaimUncertain {
		t.Errorf("expected UNCERTAIN, got %q", v)
	}
}

func TestMatchOverall(t *testing.T) {
	cases := map[Verdict]string{
		VerdictTrue:      "t",
		VerdictFalse:     "f",
		VerdictMixed:     "m",
		VerdictUncertain: "u",
		Verdict("bogus"): "u",
	}
	for v, want := range cases {
		if got := MatchOverall(v, "t", "f", "m", "u"); got != want {
			t.Errorf("MatchOverall(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestMatchClaim(t *testing.T) {
	if got := MatchClaim(ClaimTrue, 1, 2, 3); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := MatchClaim(ClaimFalse, 1, 2, 3); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := MatchClaim(ClaimUncertain, 1, 2, 3); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if ClaimFalse.Overall() != VerdictFalse {
		t.Errorf("expected FALSE to widen to FALSE")
	}
}

func TestConfidence_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Confidence
		wantErr bool
	}{
		{`0`, 0, false},
		{`100`, 100, false},
		{`85`, 85, false},
		{`72.6`, 73, false},
		{`-1`, 0, true},
		{`101`, 0, true},
		{`"high"`, 0, true},
	}

	for _, tt := range tests {
		var c Confidence
		err := json.Unmarshal([]byte(tt.input), &c)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && c != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, c, tt.want)
		}
	}
}

func TestAnalysisResult_Validate(t *testing.T) {
	valid := AnalysisResult{
		OverallVerdict: VerdictMixed,
		Claims: []Claim{
			{Text: "a", Verdict: ClaimTrue},
			{Text: "b", Verdict: ClaimFalse},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}

	missing := AnalysisResult{}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing overallVerdict")
	}

	badClaim := AnalysisResult{
		OverallVerdict: VerdictTrue,
		Claims:         []Claim{{Text: "a"}},
	}
	err := badClaim.Validate()
	if err == nil || !strings.Contains(err.Error(), "claim 1") {
		t.Errorf("expected claim 1 error, got %v", err)
	}
}

func TestSource_IsLink(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/article", true},
		{GeneralKnowledge, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := (Source{URL: tt.url}).IsLink(); got != tt.want {
			t.Errorf("IsLink(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestConfig_Redacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "secret"

	red := cfg.Redacted()
	if red.LLM.APIKey == "secret" {
		t.Error("expected API key to be redacted")
	}
	if cfg.LLM.APIKey != "secret" {
		t.Error("Redacted must not modify the original")
	}
}
