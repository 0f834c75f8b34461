package render

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// Text converts WordPress markup to plain text. Block-level boundaries become
// single spaces and runs of whitespace collapse.
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skip := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")

		case xhtml.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "p", "br", "li", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				sb.WriteString(" ")
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "li", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				sb.WriteString(" ")
			}

		case xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "br" {
				sb.WriteString(" ")
			}

		case xhtml.TextToken:
			if skip == 0 {
				// the tokenizer already unescapes entities
				sb.Write(tokenizer.Text())
			}
		}
	}
}

// Truncate cuts s to at most max characters
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// ReadMoreMarker replaces WordPress' trailing "[&hellip;]" with an ellipsis
func ReadMoreMarker(s string) string {
	s = strings.Replace(s, "[&hellip;]", "...", 1)
	return strings.Replace(s, "[…]", "...", 1)
}

// Paragraph escapes user text and renders it as a single paragraph,
// turning newlines into line breaks.
func Paragraph(text string) string {
	escaped := html.EscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// SplitAfterParagraph splits an HTML body after its n-th top-level paragraph.
// When the body has n paragraphs or fewer the second half is empty.
func SplitAfterParagraph(body string, n int) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", "", err
	}

	var first, second strings.Builder
	seen := 0
	var renderErr error

	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		if renderErr != nil {
			return
		}
		fragment, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return
		}
		if seen < n {
			first.WriteString(fragment)
			if goquery.NodeName(s) == "p" {
				seen++
			}
			return
		}
		second.WriteString(fragment)
	})
	if renderErr != nil {
		return "", "", renderErr
	}

	return first.String(), strings.TrimSpace(second.String()), nil
}

// FirstImage returns the src of the first <img> in body, if any
func FirstImage(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
