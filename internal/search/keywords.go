package search

import "strings"

// maxKeywords caps the keyword list per entry.
const maxKeywords = 10

// stopWords are filtered out of keyword candidates.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "as": true, "by": true, "is": true,
	"it": true, "be": true, "with": true, "from": true, "that": true,
}

// ExtractKeywords derives significant search terms from a function's
// name, tags, and description. Name segments are split on underscores so
// "ft_strlen" also surfaces "strlen"; stop words and words shorter than
// three characters are dropped. The result preserves first-seen order and
// is capped at maxKeywords.
func ExtractKeywords(name string, tags []string, description string) []string {
	candidates := strings.Split(strings.ToLower(name), "_")
	for _, tag := range tags {
		candidates = append(candidates, strings.ToLower(tag))
	}
	candidates = append(candidates, strings.Fields(strings.ToLower(description))...)

	seen := make(map[string]bool, len(candidates))
	keywords := make([]string, 0, maxKeywords)
	for _, word := range candidates {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_')
		})
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
