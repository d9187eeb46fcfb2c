package parse

import (
	"regexp"
	"strings"
)

// NoDescription is the deterministic fallback used when no comment pattern
// yields a usable description.
const NoDescription = "No description available."

// minDescriptionLen rejects trivially short matches such as a bare
// decoration line or a one-word comment.
const minDescriptionLen = 10

// descriptionPatterns is the comment-shape cascade: doc block comment,
// plain block comment, line comment.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)/\*\*\s*(.*?)\s*\*/`),
	regexp.MustCompile(`(?s)/\*\s*(.*?)\s*\*/`),
	regexp.MustCompile(`//\s*(.*)`),
}

// decorativeMarkers identify banner lines (and the 42 header art) that
// carry no prose.
var decorativeMarkers = []string{
	"****************",
	":::      ::::::::",
}

// ExtractDescription pulls the leading documentation comment out of raw
// file content. Patterns are tried in order; the first match whose cleaned
// text exceeds the minimum length is accepted, otherwise the fallback
// placeholder is returned.
func ExtractDescription(content string) string {
	for _, re := range descriptionPatterns {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		desc := cleanCommentBody(m[1])
		if len(desc) > minDescriptionLen {
			return desc
		}
	}
	return NoDescription
}

// cleanCommentBody strips comment decoration and joins the remaining
// non-empty lines with single spaces.
func cleanCommentBody(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if line == "" || isDecorative(line) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

func isDecorative(line string) bool {
	for _, marker := range decorativeMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
