package search

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
)

// indexBatchSize bounds how many entries go into one bleve batch.
const indexBatchSize = 100

// BuildIndex creates a fresh bleve index at indexDir from the given
// entries. Any existing index at that path is replaced. The entry name is
// the document ID, so re-indexing the same catalog is idempotent.
func BuildIndex(indexDir string, entries []Entry) error {
	if err := os.RemoveAll(indexDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(indexDir), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	mapping := bleve.NewIndexMapping()
	index, err := bleve.New(indexDir, mapping)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer index.Close()

	batch := index.NewBatch()
	for i, entry := range entries {
		if err := batch.Index(entry.Name, entry); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", entry.Name, err)
		}
		if (i+1)%indexBatchSize == 0 {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}
	return nil
}

// WriteVersionFile records the index schema version next to indexDir.
func WriteVersionFile(dataDir string) error {
	path := filepath.Join(dataDir, ".index_version")
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", IndexSchemaVersion)), 0644)
}

// ReadVersionFile returns the stored index schema version, or 0 when no
// version file exists.
func ReadVersionFile(dataDir string) int {
	data, err := os.ReadFile(filepath.Join(dataDir, ".index_version"))
	if err != nil {
		return 0
	}
	version := 0
	fmt.Sscanf(string(data), "%d", &version)
	return version
}
