package summary

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// goldmark's default renderer omits raw HTML, so model output cannot inject markup
var markdown = goldmark.New()

// ToHTML renders model Markdown as HTML
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
