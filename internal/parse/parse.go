// Package parse implements the metadata extraction pipeline: category
// discovery, recursive source walking, heuristic prototype/tag/description
// extraction, declaration fallback parsing, and the merge of all sources
// with manual overrides into a single ordered catalog.
//
// The pipeline is single-threaded and runs to completion in one pass over
// the tree. Extraction is purely lexical: ordered regex cascades against
// raw file text, never a real C grammar. Every heuristic miss falls back
// to a deterministic placeholder so each function always carries a
// complete record.
package parse

import (
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/libft-tools/libdoc/internal/catalog"
	"github.com/libft-tools/libdoc/internal/manual"
)

// Library identity stamped into every generated catalog.
const (
	LibraryName        = "libft"
	LibraryVersion     = "1.0.0"
	LibraryDescription = "42 School C Library - Extended standard library functions"
	LibraryAuthor      = "dlesieur"
)

// entryPointStem marks program entry-point files (main.c); they define no
// library function and are never indexed.
const entryPointStem = "main"

// ReturnValuePlaceholder fills return_value until extraction exists.
const ReturnValuePlaceholder = "Return value description not available."

// Parser drives the extraction pipeline for one source tree.
type Parser struct {
	SourceDir string
}

// New returns a parser rooted at sourceDir.
func New(sourceDir string) *Parser {
	return &Parser{SourceDir: sourceDir}
}

// Parse runs the full pipeline and returns the assembled catalog.
//
// Phases, in order: (1) category discovery; (2) implementation files,
// first-seen wins; (3) declaration fallback for functions with no
// implementation file; (4) manual override load; (5) whole-record override
// application. Precedence, lowest to highest: declaration-derived,
// implementation-derived, manual override. A name's position in the
// discovery order is fixed at first insertion from any phase.
//
// Only an unreadable root is fatal; individual file failures are logged
// and skipped.
func (p *Parser) Parse() (*catalog.Catalog, error) {
	if _, err := os.Stat(p.SourceDir); err != nil {
		return nil, fmt.Errorf("source directory unavailable: %w", err)
	}
	root := ResolveRoot(p.SourceDir)

	categories, err := DiscoverCategories(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories under %s: %w", root, err)
	}

	impl, hdrs, err := collectSources(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	cat := catalog.New(LibraryName, LibraryVersion, LibraryDescription, LibraryAuthor)
	cat.Categories = categories

	log.Printf("Scanning source directory: %s", root)
	fileCount := 0
	for _, f := range impl {
		name := fileStem(f.RelPath)
		if name == entryPointStem {
			continue
		}
		if cat.Contains(name) {
			continue
		}
		data, err := os.ReadFile(f.AbsPath)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", f.RelPath, err)
			continue
		}
		content := string(data)
		if !strings.Contains(content, "(") {
			continue
		}
		fileCount++
		category, categoryPath := splitCategory(f.RelPath)
		if cat.Insert(newRecord(name, content, category, categoryPath)) {
			log.Printf("  Parsed: %s (%s)", name, category)
		}
	}
	log.Printf("Processed %d C files, found %d functions", fileCount, len(cat.Functions))

	declCount := 0
	for _, h := range hdrs {
		data, err := os.ReadFile(h.AbsPath)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", h.RelPath, err)
			continue
		}
		content := string(data)
		category, categoryPath := splitCategory(h.RelPath)
		for _, decl := range ParseHeaderDecls(content) {
			if cat.Contains(decl.Name) {
				continue
			}
			rec := newRecord(decl.Name, content, category, categoryPath)
			if len(decl.Prototype) > len(decl.Name) {
				rec.Prototype = decl.Prototype
			}
			if cat.Insert(rec) {
				declCount++
			}
		}
	}
	if declCount > 0 {
		log.Printf("Recovered %d declared-only functions from headers", declCount)
	}

	overrides, err := manual.Load(root, p.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual overrides: %w", err)
	}
	for _, rec := range overrides {
		cat.Override(rec)
	}
	if len(overrides) > 0 {
		log.Printf("Applied %d manual overrides", len(overrides))
	}

	return cat, nil
}

// newRecord assembles a complete record from one file's content using the
// heuristic extractors. Every field is filled, with placeholders where a
// heuristic finds nothing.
func newRecord(name, content, category, categoryPath string) *catalog.FunctionRecord {
	return &catalog.FunctionRecord{
		Name:         name,
		Category:     category,
		CategoryPath: categoryPath,
		Tags:         ClassifyTags(name, content),
		Prototype:    ExtractPrototype(content, name),
		Description:  ExtractDescription(content),
		Parameters:   []catalog.Parameter{},
		ReturnValue:  ReturnValuePlaceholder,
		Examples: []catalog.Example{{
			Title: fmt.Sprintf("Basic usage of %s", name),
			Code:  fmt.Sprintf("// Example usage of %s\n// TODO: Add real example", name),
		}},
		Notes:   []string{},
		SeeAlso: []string{},
		Related: []string{},
	}
}

// fileStem returns the base name of relPath without its extension.
func fileStem(relPath string) string {
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}
