package render

import (
	"fmt"

	"github.com/ppiankov/realitycheck/internal/model"
)

// Badge is the display style of a verdict
type Badge struct {
	Label string
	Icon  string // terminal glyph
	Class string // css class on the web page
}

var (
	badgeTrue      = Badge{Label: "Likely True", Icon: "✓", Class: "success"}
	badgeFalse     = Badge{Label: "Likely False", Icon: "✗", Class: "destructive"}
	badgeMixed     = Badge{Label: "Mixed Evidence", Icon: "!", Class: "warning"}
	badgeUncertain = Badge{Label: "Uncertain", Icon: "?", Class: "muted"}
)

// BadgeForOverall returns the badge for an overall verdict
func BadgeForOverall(v model.Verdict) Badge {
	return model.MatchOverall(v, badgeTrue, badgeFalse, badgeMixed, badgeUncertain)
}

// BadgeForClaim returns the badge for a claim verdict
func BadgeForClaim(v model.ClaimVerdict) Badge {
	return model.MatchClaim(v, badgeTrue, badgeFalse, badgeUncertain)
}

// WithConfidence renders the badge followed by the confidence percentage
func (b Badge) WithConfidence(c model.Confidence) string {
	return fmt.Sprintf("%s %s (%d%%)", b.Icon, b.Label, c)
}

// ClaimsLabel returns the "Based on analysis of N claims" header line
func ClaimsLabel(n int) string {
	if n == 1 {
		return "Based on analysis of 1 claim"
	}
	return fmt.Sprintf("Based on analysis of %d claims", n)
}
