package parse

import (
	"regexp"
	"strings"
)

// declPattern matches one prototype-style declaration line in a header: an
// optional return-type prefix, a library-convention function name, a
// parenthesized argument list free of statement and block delimiters, and
// a terminating semicolon. Multi-declaration lines and macro bodies fall
// outside this shape on purpose.
var declPattern = regexp.MustCompile(`(?m)^\s*(?:[A-Za-z_][\w\s\*]*[\s\*])?(ft_\w+)\s*\(([^;{}]*)\)\s*;`)

// HeaderDecl is one function declaration lifted from a header file.
type HeaderDecl struct {
	Name      string
	Prototype string
}

// ParseHeaderDecls scans header content for declaration-shaped lines and
// returns them in order of appearance. The prototype is the declaration
// text with the trailing semicolon and surrounding whitespace removed.
func ParseHeaderDecls(content string) []HeaderDecl {
	matches := declPattern.FindAllStringSubmatch(content, -1)
	decls := make([]HeaderDecl, 0, len(matches))
	for _, m := range matches {
		proto := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[0]), ";"))
		decls = append(decls, HeaderDecl{Name: m[1], Prototype: proto})
	}
	return decls
}
