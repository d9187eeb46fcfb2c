// Package search builds the full-text search surface over a function
// catalog: one searchable entry per function, keyword extraction, and the
// persisted bleve index consumed by the server tools.
package search

import (
	"github.com/libft-tools/libdoc/internal/catalog"
)

// IndexSchemaVersion increments when the entry shape or keyword logic
// changes; a version mismatch on disk invalidates the stored index.
const IndexSchemaVersion = 1

// Entry is the searchable projection of one FunctionRecord.
type Entry struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	CategoryPath string   `json:"category_path"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	Prototype    string   `json:"prototype"`
	Keywords     []string `json:"keywords"`
}

// BuildEntries projects every catalog record into a search entry, in
// discovery order.
func BuildEntries(c *catalog.Catalog) []Entry {
	entries := make([]Entry, 0, len(c.Order))
	for _, name := range c.Order {
		rec, ok := c.Functions[name]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Name:         rec.Name,
			Category:     rec.Category,
			CategoryPath: rec.CategoryPath,
			Tags:         rec.Tags,
			Description:  rec.Description,
			Prototype:    rec.Prototype,
			Keywords:     ExtractKeywords(rec.Name, rec.Tags, rec.Description),
		})
	}
	return entries
}
