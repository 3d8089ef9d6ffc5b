package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// AnalysisResult is the complete fact-check returned for one request.
// Nothing in it outlives the request that produced it.
type AnalysisResult struct {
	OverallVerdict    Verdict    `json:"overallVerdict"`
	OverallConfidence Confidence `json:"overallConfidence"`
	OverallSummary    string     `json:"overallSummary"`
	Claims            []Claim    `json:"claims"` // Extraction order, numbered from 1 when displayed
}

// Confidence is a score in [0, 100]
type Confidence int

// UnmarshalJSON accepts any JSON number in range and rounds it
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("confidence: %w", err)
	}
	if f < 0 || f > 100 || math.IsNaN(f) {
		return fmt.Errorf("confidence %v out of range 0-100", f)
	}
	*c = Confidence(math.Round(f))
	return nil
}

// Validate checks the invariants that decoding alone cannot: the overall
// verdict must be present and every claim must carry a verdict.
func (r *AnalysisResult) Validate() error {
	if !r.OverallVerdict.Valid() {
		return fmt.Errorf("missing or invalid overallVerdict %q", r.OverallVerdict)
	}
	for i, claim := range r.Claims {
		if !claim.Verdict.Valid() {
			return fmt.Errorf("claim %d: missing or invalid verdict %q", i+1, claim.Verdict)
		}
	}
	return nil
}

// ClaimCount returns the number of claims
func (r *AnalysisResult) ClaimCount() int {
	return len(r.Claims)
}
