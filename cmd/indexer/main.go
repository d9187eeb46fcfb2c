package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/libft-tools/libdoc/internal/catalog"
	"github.com/libft-tools/libdoc/internal/search"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog-file> <data-dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s output/metadata.json ~/.libdoc\n", os.Args[0])
		os.Exit(1)
	}

	catalogFile := os.Args[1]
	dataDir := os.Args[2]

	log.Printf("libdoc Catalog Indexer v%d", search.IndexSchemaVersion)
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// Step 1: Load and validate the catalog
	log.Printf("Loading catalog: %s", catalogFile)
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if err := cat.Validate(); err != nil {
		log.Fatalf("Catalog is inconsistent: %v", err)
	}

	entries := search.BuildEntries(cat)
	log.Printf("✓ Loaded %d functions across %d categories", len(entries), len(cat.CategoryPaths()))

	// Step 2: Install the catalog into the data directory so the server
	// tools find it next to the index
	installedCatalog := filepath.Join(dataDir, "catalog", "metadata.json")
	if err := installCatalog(catalogFile, installedCatalog); err != nil {
		log.Fatalf("Failed to install catalog: %v", err)
	}
	log.Printf("✓ Catalog installed: %s", installedCatalog)

	// Step 3: Build the search index
	indexDir := filepath.Join(dataDir, "search", "index")
	log.Printf("Creating search index: %s", indexDir)
	if err := search.BuildIndex(indexDir, entries); err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}
	log.Printf("✓ Indexed %d functions successfully", len(entries))

	// Step 4: Write version file
	if err := search.WriteVersionFile(filepath.Join(dataDir, "search")); err != nil {
		log.Printf("Warning: Failed to write version file: %v", err)
	} else {
		log.Printf("✓ Index schema version: v%d", search.IndexSchemaVersion)
	}

	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("✓ Indexing complete!")
	log.Printf("")
	log.Printf("Index details:")
	log.Printf("  Location:        %s", indexDir)
	log.Printf("  Total functions: %d", len(entries))
	log.Printf("  Categories:      %d", len(cat.CategoryPaths()))
	log.Printf("  Schema:          v%d", search.IndexSchemaVersion)
}

// installCatalog copies the catalog file into the data directory. A plain
// copy keeps the source file untouched for re-runs.
func installCatalog(src, dst string) error {
	if abs, err := filepath.Abs(src); err == nil {
		if absDst, err := filepath.Abs(dst); err == nil && abs == absDst {
			return nil // Already in place
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create installed catalog: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy catalog: %w", err)
	}
	return nil
}
