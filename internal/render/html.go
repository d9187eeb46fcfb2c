// Package render turns a catalog into the static documentation page. The
// category tree and breadcrumbs are rebuilt from category_path strings on
// every render; nothing hierarchical is persisted.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/libft-tools/libdoc/internal/catalog"
)

//go:embed catalog.html.tmpl
var pageTemplate string

//go:embed styles.css
var stylesheet string

// group holds one category's functions, name-sorted for display.
type group struct {
	Category  string
	Functions []*catalog.FunctionRecord
}

type pageData struct {
	Catalog *catalog.Catalog
	Tree    *catalog.CategoryNode
	Groups  []group
	Styles  template.CSS
}

var funcs = template.FuncMap{
	// breadcrumb renders "a/b/c" as "a > b > c".
	"breadcrumb": func(categoryPath string) string {
		return strings.Join(strings.Split(categoryPath, catalog.PathSeparator), " > ")
	},
	"firstSegment": func(path string) string {
		return strings.SplitN(path, catalog.PathSeparator, 2)[0]
	},
	// unsafe injects pre-rendered narrative HTML; the narrative documents
	// are repository-local, hand-authored files, not untrusted input.
	"unsafe": func(s *string) template.HTML {
		if s == nil {
			return ""
		}
		return template.HTML(*s)
	},
}

var page = template.Must(template.New("catalog").Funcs(funcs).Parse(pageTemplate))

// HTML renders the full documentation page for c.
func HTML(c *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	data := pageData{
		Catalog: c,
		Tree:    c.CategoryTree(),
		Groups:  groupByCategory(c),
		Styles:  template.CSS(stylesheet),
	}
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render catalog page: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSite renders the page and writes index.html under outDir.
func WriteSite(outDir string, c *catalog.Catalog) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	html, err := HTML(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.html"), html, 0644); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}
	return nil
}

// groupByCategory buckets records by flat category, categories sorted
// lexicographically and functions sorted by name within each bucket.
func groupByCategory(c *catalog.Catalog) []group {
	buckets := make(map[string][]*catalog.FunctionRecord)
	for _, rec := range c.Functions {
		buckets[rec.Category] = append(buckets[rec.Category], rec)
	}
	categories := make([]string, 0, len(buckets))
	for cat := range buckets {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	groups := make([]group, 0, len(categories))
	for _, cat := range categories {
		recs := buckets[cat]
		sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
		groups = append(groups, group{Category: cat, Functions: recs})
	}
	return groups
}
