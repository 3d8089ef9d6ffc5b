package model

// GeneralKnowledge is the url sentinel for a source without an external
// citation. It must never be rendered as a link.
const GeneralKnowledge = "General Knowledge"

// Source is a citation supporting a claim's verdict
type Source struct {
	Title   string `json:"title"`   // Display name
	URL     string `json:"url"`     // URL or GeneralKnowledge
	Excerpt string `json:"excerpt"` // Supporting quote, hidden when empty
}

// IsLink reports whether the source should be rendered as a hyperlink
func (s Source) IsLink() bool {
	return s.URL != "" && s.URL != GeneralKnowledge
}
