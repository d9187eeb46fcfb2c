// Package manual discovers and loads hand-authored override documents:
// JSON records mirroring the catalog's function schema, optionally paired
// with a markdown narrative document rendered to HTML. Overrides
// supersede auto-extracted metadata record-for-record; the aggregator
// applies them as whole-record replacements.
package manual

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/libft-tools/libdoc/internal/catalog"
)

//go:embed record_schema.json
var recordSchemaJSON []byte

// schemaResource is the synthetic URL the embedded schema is compiled
// under; nothing is ever fetched.
const schemaResource = "libdoc://manual/record_schema.json"

// candidateDirs are the conventional documentation locations scanned for
// record files, tried under both the resolved library root and the
// original source root.
var candidateDirs = []string{"manual", "docs/manual", "docs/api", "docs"}

// Loader validates and decodes override record files.
type Loader struct {
	schema *jsonschema.Schema
}

// NewLoader compiles the embedded record schema. Failure here is a build
// defect, not an input problem.
func NewLoader() (*Loader, error) {
	var doc any
	if err := json.Unmarshal(recordSchemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("embedded record schema is invalid JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("failed to register record schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	return &Loader{schema: schema}, nil
}

// Load scans the candidate documentation directories under each root and
// returns the decoded records in deterministic load order. Two records
// targeting the same function name both appear, later one last, so a
// caller applying them in order gets last-write-wins. Malformed or
// invalid records are reported and skipped; they never abort the load.
func (l *Loader) Load(roots ...string) ([]*catalog.FunctionRecord, error) {
	var records []*catalog.FunctionRecord
	seen := make(map[string]struct{})
	for _, dir := range resolveCandidates(roots) {
		files, err := collectRecordFiles(dir)
		if err != nil {
			log.Printf("Warning: skipping manual directory %s: %v", dir, err)
			continue
		}
		for _, path := range files {
			// Candidate directories can nest (docs contains docs/api);
			// each record file is loaded once.
			key := path
			if real, err := filepath.EvalSymlinks(path); err == nil {
				key = real
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			rec, err := l.loadRecord(path)
			if err != nil {
				log.Printf("Warning: skipping manual record %s: %v", path, err)
				continue
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// Load is the package-level convenience wrapper: compile the schema, scan
// the roots.
func Load(roots ...string) ([]*catalog.FunctionRecord, error) {
	loader, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load(roots...)
}

// resolveCandidates expands roots into existing candidate directories,
// deduplicated by resolved path (the library root and the source root
// coincide when no library subdirectory exists).
func resolveCandidates(roots []string) []string {
	var dirs []string
	seen := make(map[string]struct{})
	for _, root := range roots {
		for _, sub := range candidateDirs {
			dir := filepath.Join(root, filepath.FromSlash(sub))
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			key := dir
			if real, err := filepath.EvalSymlinks(dir); err == nil {
				key = real
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// collectRecordFiles gathers .json files beneath dir recursively, in the
// walker's deterministic lexical order.
func collectRecordFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadRecord validates, decodes, and completes one record file.
func (l *Loader) loadRecord(path string) (*catalog.FunctionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var inst any
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if err := l.schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("record does not match schema: %w", err)
	}

	var rec catalog.FunctionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	// The function name may live in the content or in the file name.
	if rec.Name == "" {
		base := filepath.Base(path)
		rec.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	completeCategories(&rec)

	if rec.ManualPath != nil && *rec.ManualPath != "" {
		// The narrative path is relative to the record's own directory.
		mdPath := filepath.Join(filepath.Dir(path), filepath.FromSlash(*rec.ManualPath))
		html, err := renderNarrative(mdPath)
		if err != nil {
			log.Printf("Warning: narrative for %s unavailable: %v", rec.Name, err)
		} else {
			rec.ManualHTML = &html
		}
	}

	rec.Normalize()
	return &rec, nil
}

// completeCategories fills category and category_path from each other so
// that either field alone is sufficient input. When both are present the
// path is authoritative: category is rewritten to its first segment, so a
// record can never carry a path that disagrees with its category. Records
// carrying neither land in "misc" like root-level source files do.
func completeCategories(rec *catalog.FunctionRecord) {
	switch {
	case rec.Category == "" && rec.CategoryPath == "":
		rec.Category = "misc"
	case rec.CategoryPath == "":
		rec.CategoryPath = rec.Category
	default:
		rec.Category = strings.SplitN(rec.CategoryPath, catalog.PathSeparator, 2)[0]
	}
}
