package factcheck

import "github.com/ppiankov/realitycheck/internal/model"

const (
	fallbackConfidence  = 50
	fallbackTextRunes   = 200
	fallbackSummary     = "Unable to analyze the content properly. Please try again."
	fallbackExplanation = "Analysis could not be completed. Please try with clearer content."
)

// Fallback builds the deterministic low-confidence result used when the
// model reply cannot be parsed. The single claim quotes the first 200
// characters of the input followed by "...".
func Fallback(text string) *model.AnalysisResult {
	return &model.AnalysisResult{
		OverallVerdict:    model.VerdictUncertain,
		OverallConfidence: fallbackConfidence,
		OverallSummary:    fallbackSummary,
		Claims: []model.Claim{
			{
				Text:        truncateRunes(text, fallbackTextRunes) + "...",
				Verdict:     model.ClaimUncertain,
				Confidence:  fallbackConfidence,
				Explanation: fallbackExplanation,
				Sources:     []model.Source{},
			},
		},
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
