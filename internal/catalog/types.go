package catalog

// Field names mirror the serialized metadata.json consumed by the site
// renderer; renaming any of them breaks the navigation built from
// category_path splitting.

// Parameter describes one function parameter. Parameter extraction is not
// implemented yet; the slice is always empty but kept in the schema so the
// renderer does not need a migration when it lands.
type Parameter struct {
	Name        string `json:"name"`
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
}

// Example is a usage example attached to a function. Every record carries
// at least one generated placeholder example.
type Example struct {
	Title  string  `json:"title"`
	Code   string  `json:"code"`
	Output *string `json:"output"`
}

// FunctionRecord is the per-function entry of the catalog.
type FunctionRecord struct {
	Name string `json:"name"`

	// Category is the top-level directory (first path segment relative to
	// the resolved source root). Always non-empty.
	Category string `json:"category"`

	// CategoryPath is the full nested path like "data_structures/vector".
	// Empty means the function sits directly in its top-level category.
	// Invariant: when non-empty, its first segment equals Category.
	CategoryPath string `json:"category_path"`

	Tags        []string    `json:"tags"`
	Prototype   string      `json:"prototype"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	ReturnValue string      `json:"return_value"`
	Examples    []Example   `json:"examples"`
	Complexity  *string     `json:"complexity"`
	Notes       []string    `json:"notes"`
	SeeAlso     []string    `json:"see_also"`

	// Manual override fields. Populated only from hand-authored records.
	UpdatedAt  *string  `json:"updated_at"`
	AuthorRole *string  `json:"author_role"`
	Related    []string `json:"related"`
	ManualPath *string  `json:"manual_path"`
	ManualHTML *string  `json:"manual_html"`
}

// Normalize ensures slice fields serialize as [] instead of null so the
// renderer never sees a missing array.
func (r *FunctionRecord) Normalize() {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Parameters == nil {
		r.Parameters = []Parameter{}
	}
	if r.Examples == nil {
		r.Examples = []Example{}
	}
	if r.Notes == nil {
		r.Notes = []string{}
	}
	if r.SeeAlso == nil {
		r.SeeAlso = []string{}
	}
	if r.Related == nil {
		r.Related = []string{}
	}
}
