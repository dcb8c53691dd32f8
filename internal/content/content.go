// Package content prepares rich-text article bodies for storage.
package content

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ExcerptLength is the maximum excerpt length in runes
const ExcerptLength = 200

// policy allows the markup a rich-text editor produces
var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and other unsafe markup from body
func Sanitize(body string) string {
	return strings.TrimSpace(policy.Sanitize(body))
}

// PlainText returns the text content of an HTML fragment with whitespace collapsed
func PlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	// block elements run together in Text(); pad them so words stay apart
	doc.Find("p, br, li, h1, h2, h3, h4, h5, h6, blockquote, pre, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns up to ExcerptLength runes of the body's text, cut at a
// word boundary when possible and suffixed with an ellipsis when shortened.
func Excerpt(body string) string {
	text := PlainText(body)
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:ExcerptLength])
	if i := strings.LastIndex(cut, " "); i >= 0 && utf8.RuneCountInString(cut[:i]) > ExcerptLength/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// IsBlank reports whether an HTML body has no visible text, as an empty
// editor document ("<p></p>") does.
func IsBlank(body string) bool {
	return PlainText(body) == ""
}
