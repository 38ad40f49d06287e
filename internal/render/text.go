package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText extracts a plain-text rendition from the rendered HTML page,
// suitable for ATS uploads. Section headers and entries come out one block
// per line in document order.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse HTML", Cause: err}
	}

	var lines []string
	appendText := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			lines = append(lines, s)
		}
	}

	doc.Find("h1, .contact-line").Each(func(_ int, sel *goquery.Selection) {
		appendText(sel.Text())
	})

	doc.Find("section").Each(func(_ int, section *goquery.Selection) {
		lines = append(lines, "")
		appendText(section.Find("h2").Text())
		section.Find("p, .entry, li").Each(func(_ int, sel *goquery.Selection) {
			// .entry wraps nested p elements; skip those to avoid duplicates.
			if sel.Is("p") && sel.ParentsFiltered(".entry").Length() > 0 {
				return
			}
			appendText(sel.Text())
		})
	})

	return strings.Join(lines, "\n") + "\n", nil
}
