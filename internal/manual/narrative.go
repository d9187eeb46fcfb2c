package manual

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
)

// renderNarrative loads a markdown narrative document and converts it to
// HTML for embedding in the record's manual_html field.
func renderNarrative(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
