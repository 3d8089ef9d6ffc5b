package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the readable text of an HTML document: the title
// followed by headings, paragraphs and list items, one block per line.
// Documents without such blocks fall back to the whole body text.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, iframe, nav, footer, aside").Remove()

	var blocks []string
	if title := collapse(doc.Find("title").First().Text()); title != "" {
		blocks = append(blocks, title)
	}

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var body []string
	root.Find("h1, h2, h3, p, li, blockquote").Each(func(i int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			body = append(body, text)
		}
	})
	if len(body) == 0 {
		if text := collapse(root.Text()); text != "" {
			body = append(body, text)
		}
	}

	return strings.Join(append(blocks, body...), "\n"), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
