package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// prototypePatterns builds the ordered matcher cascade for one function
// name, most specific first:
//
//  1. definition shape: a non-comment line start through the name and its
//     argument list up to the opening brace (the brace may sit on the
//     next line, 42-norm style);
//  2. declaration shape: the same but terminated by a semicolon;
//  3. loose shape: the name followed by a parenthesized argument list.
func prototypePatterns(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[^/\s{};][^;{}\n]*\b` + quoted + `\s*\([^;{}]*\)\s*\{`),
		regexp.MustCompile(`(?m)^[^/\s{};][^;{}\n]*\b` + quoted + `\s*\([^;{}]*\)\s*;`),
		regexp.MustCompile(`\b` + quoted + `\s*\([^;{}]*\)`),
	}
}

// ExtractPrototype locates the signature text for name within content.
// The first pattern producing a result longer than the bare name wins;
// trailing delimiters and whitespace are trimmed. When nothing matches, a
// deterministic placeholder naming the function is returned so every
// record stays complete.
func ExtractPrototype(content, name string) string {
	for _, re := range prototypePatterns(name) {
		m := re.FindString(content)
		if m == "" {
			continue
		}
		proto := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m), "{;"))
		if len(proto) > len(name) {
			return proto
		}
	}
	return fmt.Sprintf("/* Generated prototype for %s */", name)
}
