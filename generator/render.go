package generator

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderHTML converts a prompt document to HTML for the form preview.
func RenderHTML(doc string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(doc), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
