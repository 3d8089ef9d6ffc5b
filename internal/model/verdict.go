package model

import (
	"encoding/json"
	"fmt"
)

// Verdict is the overall outcome of a fact-check.
type Verdict string

const (
	VerdictTrue      Verdict = "TRUE"
	VerdictFalse     Verdict = "FALSE"
	VerdictMixed     Verdict = "MIXED"
	VerdictUncertain Verdict = "UNCERTAIN"
)

// ClaimVerdict is the outcome for a single claim. MIXED only exists at the
// overall level.
type ClaimVerdict string

const (
	ClaimTrue      ClaimVerdict = "TRUE"
	ClaimFalse     ClaimVerdict = "FALSE"
	ClaimUncertain ClaimVerdict = "UNCERTAIN"
)

// Valid reports whether v is one of the four overall verdicts
func (v Verdict) Valid() bool {
	return v == VerdictTrue || v == VerdictFalse || v == VerdictMixed || v == VerdictUncertain
}

// Valid reports whether v is one of the three claim verdicts
func (v ClaimVerdict) Valid() bool {
	return v == ClaimTrue || v == ClaimFalse || v == ClaimUncertain
}

// UnmarshalJSON rejects values outside the overall verdict set
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("verdict: %w", err)
	}
	if !Verdict(s).Valid() {
		return fmt.Errorf("unknown overall verdict %q", s)
	}
	*v = Verdict(s)
	return nil
}

// UnmarshalJSON rejects values outside the claim verdict set, including MIXED
func (v *ClaimVerdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("claim verdict: %w", err)
	}
	if !ClaimVerdict(s).Valid() {
		return fmt.Errorf("unknown claim verdict %q", s)
	}
	*v = ClaimVerdict(s)
	return nil
}

// MatchOverall picks the value for v's variant. Every variant must be
// supplied, so a new verdict breaks each call site at compile time.
// Values outside the set resolve to ifUncertain.
func MatchOverall[T any](v Verdict, ifTrue, ifFalse, ifMixed, ifUncertain T) T {
	switch v {
	case VerdictTrue:
		return ifTrue
	case VerdictFalse:
		return ifFalse
	case VerdictMixed:
		return ifMixed
	default:
		return ifUncertain
	}
}

// MatchClaim is the three-variant counterpart of MatchOverall.
func MatchClaim[T any](v ClaimVerdict, ifTrue, ifFalse, ifUncertain T) T {
	switch v {
	case ClaimTrue:
		return ifTrue
	case ClaimFalse:
		return ifFalse
	default:
		return ifUncertain
	}
}

// Overall widens a claim verdict to the overall verdict set
func (v ClaimVerdict) Overall() Verdict {
	return MatchClaim(v, VerdictTrue, VerdictFalse, VerdictUncertain)
}
