// Package richtext derives plain-text views from rich-text HTML content.
// News bodies are stored as HTML; listings show a short excerpt.
package richtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an HTML fragment and collapses whitespace.
// Invalid HTML degrades to the raw input rather than failing.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}

	// Script and style text is not content.
	doc.Find("script, style").Remove()

	return collapseWhitespace(doc.Text())
}

// Excerpt returns the first maxLen runes of the plain text, cut at a word
// boundary with a trailing ellipsis when content was dropped.
func Excerpt(html string, maxLen int) string {
	text := PlainText(html)
	if maxLen < 1 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
