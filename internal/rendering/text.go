package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText extracts the readable lines of a rendered resume, one block per line.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse rendered HTML", Cause: err}
	}

	root := doc.Find("#" + PreviewElementID)
	if root.Length() == 0 {
		return "", &RenderError{Message: "rendered HTML has no #" + PreviewElementID + " element"}
	}

	var lines []string
	root.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		if s.Is("p.contact") {
			var parts []string
			s.Find("span").Each(func(_ int, span *goquery.Selection) {
				parts = append(parts, strings.TrimSpace(span.Text()))
			})
			lines = append(lines, strings.Join(parts, " | "))
			return
		}
		if s.Is("p.description") {
			for _, line := range strings.Split(s.Text(), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		if text := collapseSpaces(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n"), nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
