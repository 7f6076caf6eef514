package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors never carry CV or posting content
const noiseSelectors = "nav, footer, script, style, noscript, iframe, svg, form, button, " +
	"[role='navigation'], [role='banner'], [aria-hidden='true'], .cookie-banner, .sidebar"

// contentSelectors are tried in order; the first with enough text wins
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".resume",
	".cv",
	".job-description",
	"#content",
	".content",
}

// minContentLength is the text length a content selector must reach before it is used
// instead of the whole body
const minContentLength = 200

const blockSelectors = "p, div, section, article, header, tr, ul, ol, table, br, h1, h2, h3, h4, h5, h6"

// LooksLikeHTML sniffs the first non-blank bytes for markup
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// HTMLToText extracts readable text from an HTML document. Headings become markdown headings,
// list items become bullets and block elements end in line breaks, so CleanText can keep the
// structure.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	root := doc.Find("body")
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && len(strings.TrimSpace(sel.Text())) >= minContentLength {
			root = sel
			break
		}
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	for level := 1; level <= 6; level++ {
		prefix := strings.Repeat("#", min(level, 3)) + " "
		root.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			s.SetText(prefix + strings.TrimSpace(s.Text()))
		})
	}
	root.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.SetText("- " + strings.TrimSpace(s.Text()) + "\n")
	})
	root.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	root.Find("td, th").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return root.Text(), nil
}
