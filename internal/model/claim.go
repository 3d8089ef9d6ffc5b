package model

// Claim is a single factual assertion extracted from the submitted text
type Claim struct {
	Text        string       `json:"text"`        // The extracted statement
	Verdict     ClaimVerdict `json:"verdict"`     // TRUE, FALSE or UNCERTAIN
	Confidence  Confidence   `json:"confidence"`  // 0-100
	Explanation string       `json:"explanation"` // Rationale for the verdict
	Sources     []Source     `json:"sources"`     // Citations, may be empty
}
