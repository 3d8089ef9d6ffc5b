package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/ppiankov/realitycheck/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageName is the name of the web page template
const PageName = "index.html"

var templateFuncs = template.FuncMap{
	"overallBadge": BadgeForOverall,
	"claimBadge":   BadgeForClaim,
	"claimsLabel":  ClaimsLabel,
	"inc":          func(i int) int { return i + 1 },
}

// PageData is the input of the web page template
type PageData struct {
	Text      string // Submitted text, echoed back into the form
	MinLength int
	Result    *model.AnalysisResult
	Fallback  bool
	Error     string
	Notice    string
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// Page writes the web page for data to w
func Page(w io.Writer, data PageData) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, PageName, data)
}
