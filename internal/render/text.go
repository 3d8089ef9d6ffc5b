package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ppiankov/realitycheck/internal/model"
)

// Model text is untrusted; tags are stripped before it reaches a terminal or
// a markdown file.
var strict = bluemonday.StrictPolicy()

func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Entity-encoded markup survives sanitizing and is decoded by clean, so angle
// brackets are encoded again for markdown, which renders inline HTML.
var mdBrackets = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func cleanMarkdown(s string) string {
	return mdBrackets.Replace(clean(s))
}

// Text writes a terminal rendering of result. Explanations and sources are
// shown only for expanded cards.
func Text(w io.Writer, result *model.AnalysisResult, cards *Cards) error {
	var b strings.Builder

	overall := BadgeForOverall(result.OverallVerdict)
	b.WriteString("═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(&b, "  Overall Verdict: %s\n", overall.WithConfidence(result.OverallConfidence))
	fmt.Fprintf(&b, "  %s\n", ClaimsLabel(result.ClaimCount()))
	b.WriteString("═══════════════════════════════════════════════════════════\n\n")

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  %s\n\n", clean(result.OverallSummary))

	if len(result.Claims) > 0 {
		b.WriteString("Individual Claims\n")
	}
	for i, claim := range result.Claims {
		badge := BadgeForClaim(claim.Verdict)
		fmt.Fprintf(&b, "\n  Claim #%d  %s\n", i+1, badge.WithConfidence(claim.Confidence))
		fmt.Fprintf(&b, "  %q\n", clean(claim.Text))

		if !cards.Expanded(i) {
			continue
		}

		fmt.Fprintf(&b, "\n    Explanation: %s\n", clean(claim.Explanation))
		if len(claim.Sources) == 0 {
			continue
		}
		b.WriteString("    Sources:\n")
		for _, src := range claim.Sources {
			if src.IsLink() {
				fmt.Fprintf(&b, "      - %s <%s>\n", clean(src.Title), src.URL)
			} else {
				fmt.Fprintf(&b, "      - %s\n", clean(src.Title))
			}
			if src.Excerpt != "" {
				fmt.Fprintf(&b, "        %q\n", clean(src.Excerpt))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders result as a markdown report with every card expanded
func Markdown(result *model.AnalysisResult) string {
	var b strings.Builder

	overall := BadgeForOverall(result.OverallVerdict)
	b.WriteString("# Reality Check\n\n")
	fmt.Fprintf(&b, "**Overall Verdict:** %s %s (%d%%)\n\n", overall.Icon, overall.Label, result.OverallConfidence)
	fmt.Fprintf(&b, "_%s_\n\n", ClaimsLabel(result.ClaimCount()))
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "%s\n\n", cleanMarkdown(result.OverallSummary))

	if len(result.Claims) == 0 {
		return b.String()
	}

	b.WriteString("## Individual Claims\n")
	for i, claim := range result.Claims {
		badge := BadgeForClaim(claim.Verdict)
		fmt.Fprintf(&b, "\n### Claim #%d: %s %s (%d%%)\n\n", i+1, badge.Icon, badge.Label, claim.Confidence)
		fmt.Fprintf(&b, "> %s\n\n", cleanMarkdown(claim.Text))
		fmt.Fprintf(&b, "**Explanation:** %s\n", cleanMarkdown(claim.Explanation))

		if len(claim.Sources) == 0 {
			continue
		}
		b.WriteString("\n**Sources:**\n\n")
		for _, src := range claim.Sources {
			if src.IsLink() {
				fmt.Fprintf(&b, "- [%s](%s)", cleanMarkdown(src.Title), src.URL)
			} else {
				fmt.Fprintf(&b, "- %s", cleanMarkdown(src.Title))
			}
			if src.Excerpt != "" {
				fmt.Fprintf(&b, ": _\"%s\"_", cleanMarkdown(src.Excerpt))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
