// Package catalog defines the aggregated function metadata model: the
// catalog itself, its per-function records, and the derived category tree
// used for navigation. The catalog is assembled once per run and is
// immutable after serialization; there is no incremental update.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// PathSeparator joins nested category segments in CategoryPath.
const PathSeparator = "/"

// Catalog is the root metadata artifact for one library.
type Catalog struct {
	Name        string                     `json:"name"`
	Version     string                     `json:"version"`
	Description string                     `json:"description"`
	Author      string                     `json:"author"`
	Categories  []string                   `json:"categories"`
	Functions   map[string]*FunctionRecord `json:"functions"`

	// Order lists function names in first-discovery order across all
	// pipeline phases. Every key of Functions appears exactly once here;
	// a name's position never changes once assigned, even when a later
	// phase replaces the record's content.
	Order []string `json:"order"`
}

// New returns an empty catalog with the given library identity.
func New(name, version, description, author string) *Catalog {
	return &Catalog{
		Name:        name,
		Version:     version,
		Description: description,
		Author:      author,
		Categories:  []string{},
		Functions:   make(map[string]*FunctionRecord),
		Order:       []string{},
	}
}

// Contains reports whether a function of that name is already recorded.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.Functions[name]
	return ok
}

// Insert records rec if its name is not yet present and appends the name to
// the discovery order. Returns false when the name was already recorded;
// the existing record is left untouched (first-seen wins within a phase).
func (c *Catalog) Insert(rec *FunctionRecord) bool {
	if rec == nil || rec.Name == "" {
		return false
	}
	if _, ok := c.Functions[rec.Name]; ok {
		return false
	}
	rec.Normalize()
	c.Functions[rec.Name] = rec
	c.Order = append(c.Order, rec.Name)
	return true
}

// Override replaces any existing record of the same name with rec as a
// whole (no field-level merge). The discovery order is untouched for known
// names; unknown names are appended, so order stays monotonic.
func (c *Catalog) Override(rec *FunctionRecord) {
	if rec == nil || rec.Name == "" {
		return
	}
	rec.Normalize()
	_, known := c.Functions[rec.Name]
	c.Functions[rec.Name] = rec
	if !known {
		c.Order = append(c.Order, rec.Name)
	}
}

// CategoryPaths collects the effective nested path of every record,
// falling back to the flat category when the nested path is empty.
// The result is sorted and deduplicated.
func (c *Catalog) CategoryPaths() []string {
	seen := make(map[string]struct{}, len(c.Functions))
	for _, rec := range c.Functions {
		p := rec.CategoryPath
		if p == "" {
			p = rec.Category
		}
		if p != "" {
			seen[p] = struct{}{}
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Validate checks the catalog's structural invariants: Order is a
// duplicate-free permutation of the Functions key set, every category is
// non-empty, and every non-empty category path starts with the record's
// flat category and contains no empty segments.
func (c *Catalog) Validate() error {
	if len(c.Order) != len(c.Functions) {
		return fmt.Errorf("order has %d entries, functions map has %d", len(c.Order), len(c.Functions))
	}
	seen := make(map[string]struct{}, len(c.Order))
	for _, name := range c.Order {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate name %q in order", name)
		}
		seen[name] = struct{}{}
		if _, ok := c.Functions[name]; !ok {
			return fmt.Errorf("order lists %q but it is not in the functions map", name)
		}
	}
	for name, rec := range c.Functions {
		if rec.Category == "" {
			return fmt.Errorf("function %q has an empty category", name)
		}
		if rec.CategoryPath == "" {
			continue
		}
		segs := strings.Split(rec.CategoryPath, PathSeparator)
		for _, s := range segs {
			if s == "" {
				return fmt.Errorf("function %q has an empty segment in category_path %q", name, rec.CategoryPath)
			}
		}
		if segs[0] != rec.Category {
			return fmt.Errorf("function %q: category_path %q does not start with category %q", name, rec.CategoryPath, rec.Category)
		}
	}
	return nil
}

// Save serializes the catalog to path as indented JSON.
func (c *Catalog) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Load reads a serialized catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if c.Functions == nil {
		c.Functions = make(map[string]*FunctionRecord)
	}
	return &c, nil
}
