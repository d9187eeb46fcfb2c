package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"github.com/libft-tools/libdoc/internal/parse"
	"github.com/libft-tools/libdoc/internal/render"
)

func main() {
	sourceDir := flag.String("source", ".", "Directory containing the library sources")
	outputDir := flag.String("output", "output", "Directory for metadata.json and the generated site")
	serveAddr := flag.String("serve", "", "Serve the generated site on this address (e.g. :8080) after generation")
	flag.Parse()

	log.Printf("libdoc generator starting...")
	log.Printf("Source: %s", *sourceDir)

	// Step 1: Parse sources into the function catalog
	cat, err := parse.New(*sourceDir).Parse()
	if err != nil {
		log.Fatalf("Failed to parse sources: %v", err)
	}
	if err := cat.Validate(); err != nil {
		log.Fatalf("Catalog is inconsistent: %v", err)
	}
	log.Printf("✓ Parsed %d functions in %d categories", len(cat.Functions), len(cat.CategoryPaths()))

	// Step 2: Write the catalog
	metadataPath := filepath.Join(*outputDir, "metadata.json")
	if err := cat.Save(metadataPath); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}
	log.Printf("✓ Catalog written: %s", metadataPath)

	// Step 3: Render the documentation site
	if err := render.WriteSite(*outputDir, cat); err != nil {
		log.Fatalf("Failed to render site: %v", err)
	}
	log.Printf("✓ Site rendered: %s", filepath.Join(*outputDir, "index.html"))

	// Step 4: Optionally serve the generated site for preview
	if *serveAddr != "" {
		log.Printf("Serving %s on %s", *outputDir, *serveAddr)
		handler := http.FileServer(http.Dir(*outputDir))
		if err := http.ListenAndServe(*serveAddr, handler); err != nil {
			log.Fatalf("Preview server error: %v", err)
		}
	}
}
