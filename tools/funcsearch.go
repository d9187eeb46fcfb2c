// Package tools exposes the catalog to MCP clients: full-text function
// search backed by a bleve index, exact-name lookup, category listing,
// and index refresh, with an inter-process lock guarding the on-disk
// index.
package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/libft-tools/libdoc/internal/catalog"
	"github.com/libft-tools/libdoc/internal/search"
)

const (
	maxResults    = 10
	catalogFile   = "catalog/metadata.json"
	indexDir      = "search/index"
	lockFile      = "search/index.lock"
	lockTimeout   = 5 * time.Second // Max time to wait for lock
	lockRetryWait = 500 * time.Millisecond
)

var (
	dataDir string // Data directory for the catalog and search index
)

func init() {
	// Strategy 1: Try user home directory first (standalone installation)
	// This works cross-platform: ~/.libdoc/ on Unix, C:\Users\...\libdoc\ on Windows
	homeDir, err := os.UserHomeDir()
	if err == nil {
		userDataDir := filepath.Join(homeDir, ".libdoc")

		// Check if user data directory exists
		if info, err := os.Stat(userDataDir); err == nil && info.IsDir() {
			dataDir = userDataDir
			log.Printf("✓ Data directory: %s (user home)", dataDir)
			return
		}

		// Try to create it - this is the expected path for standalone installations
		if err := os.MkdirAll(userDataDir, 0755); err == nil {
			// Successfully created, use it
			dataDir = userDataDir
			log.Printf("✓ Data directory created: %s", dataDir)

			// Create subdirectories
			os.MkdirAll(filepath.Join(dataDir, "catalog"), 0755)
			os.MkdirAll(filepath.Join(dataDir, "search"), 0755)
			return
		}

		// If creation failed, log warning and try next strategy
		log.Printf("Warning: Could not create user data directory at %s: %v", userDataDir, err)
	} else {
		log.Printf("Warning: Could not determine user home directory: %v", err)
	}

	// Strategy 2: Try relative to executable (development installation)
	// Binary at: libdoc/libdoc
	// Data at:   libdoc/data/
	execPath, err := os.Executable()
	if err == nil {
		execDir := filepath.Dir(execPath)
		relativeDataDir := filepath.Join(execDir, "data")

		// Check if data directory exists relative to binary
		if info, err := os.Stat(relativeDataDir); err == nil && info.IsDir() {
			dataDir, _ = filepath.Abs(relativeDataDir)
			log.Printf("✓ Data directory: %s (relative to binary)", dataDir)
			return
		}
	}

	// Strategy 3: Last resort fallback to current working directory
	dataDir = filepath.Join(".", "data")
	log.Printf("⚠️  Data directory (fallback): %s", dataDir)

	// Try to create it
	os.MkdirAll(filepath.Join(dataDir, "catalog"), 0755)
	os.MkdirAll(filepath.Join(dataDir, "search"), 0755)
}

// isProcessRunning is implemented in platform-specific files:
// - funcsearch_unix.go for Unix/Linux/macOS
// - funcsearch_windows.go for Windows

// cleanStaleLock removes lock file if the owning process is dead
func cleanStaleLock() error {
	lockPath := filepath.Join(dataDir, lockFile)

	// Read lock file
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No lock file, nothing to clean
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	// Parse PID
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		// Corrupted lock file, remove it
		log.Printf("Warning: Corrupted lock file (invalid PID), removing...")
		return os.Remove(lockPath)
	}

	// Check if process is running
	if isProcessRunning(pid) {
		return fmt.Errorf("lock held by running process %d", pid)
	}

	// Process is dead, remove stale lock
	log.Printf("Stale lock detected (PID %d not running), cleaning...", pid)
	return os.Remove(lockPath)
}

// acquireLock attempts to acquire the index lock with retry
func acquireLock() error {
	lockPath := filepath.Join(dataDir, lockFile)
	ourPID := os.Getpid()

	// Check if we already have the lock
	if data, err := os.ReadFile(lockPath); err == nil {
		if pidStr := strings.TrimSpace(string(data)); pidStr != "" {
			if pid, err := strconv.Atoi(pidStr); err == nil && pid == ourPID {
				log.Printf("Lock already held by this process (PID %d)", ourPID)
				return nil
			}
		}
	}

	startTime := time.Now()

	for {
		// Try to clean stale lock first
		if err := cleanStaleLock(); err != nil {
			// Lock is held by active process
			elapsed := time.Since(startTime)
			if elapsed >= lockTimeout {
				return fmt.Errorf("timeout waiting for index lock after %v: %w", elapsed, err)
			}

			log.Printf("Index locked by another process, waiting... (%v elapsed)", elapsed.Round(100*time.Millisecond))
			time.Sleep(lockRetryWait)
			continue
		}

		// Try to create lock file with our PID
		err := os.WriteFile(lockPath, []byte(strconv.Itoa(ourPID)), 0644)
		if err != nil {
			return fmt.Errorf("failed to create lock file: %w", err)
		}

		log.Printf("✓ Index lock acquired (PID %d)", ourPID)
		return nil
	}
}

// releaseLock releases the index lock
func releaseLock() error {
	lockPath := filepath.Join(dataDir, lockFile)

	// Verify we own the lock before removing
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Lock already removed
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err == nil && pid != os.Getpid() {
		log.Printf("Warning: Lock file contains different PID (%d vs %d), not removing", pid, os.Getpid())
		return nil
	}

	if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	log.Printf("✓ Index lock released")
	return nil
}

// FunctionResult represents a search result with score
type FunctionResult struct {
	Entry search.Entry `json:"entry"`
	Score float64      `json:"score"`
}

// SearchFunctionsInput defines input for search_functions tool
type SearchFunctionsInput struct {
	Query      string `json:"query" jsonschema:"Search query for library functions"`
	Category   string `json:"category,omitempty" jsonschema:"Restrict results to one category (optional)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
}

// SearchFunctionsOutput defines output for search_functions tool
type SearchFunctionsOutput struct {
	Results   []FunctionResult `json:"results"`
	Query     string           `json:"query"`
	TotalHits int              `json:"total_hits"`
}

// LookupFunctionInput defines input for lookup_function tool
type LookupFunctionInput struct {
	Name string `json:"name" jsonschema:"Exact function name, e.g. ft_strlen"`
}

// LookupFunctionOutput defines output for lookup_function tool
type LookupFunctionOutput struct {
	Found    bool                    `json:"found"`
	Function *catalog.FunctionRecord `json:"function,omitempty"`
}

// CategoryInfo describes one category and how many functions it holds
type CategoryInfo struct {
	Path      string `json:"path"`
	Functions int    `json:"functions"`
}

// ListCategoriesInput defines input for list_categories tool (none needed)
type ListCategoriesInput struct{}

// ListCategoriesOutput defines output for list_categories tool
type ListCategoriesOutput struct {
	Categories []CategoryInfo `json:"categories"`
	Total      int            `json:"total"`
}

// RefreshCatalogIndexInput defines input for refresh_catalog_index tool
type RefreshCatalogIndexInput struct {
	Force bool `json:"force,omitempty" jsonschema:"Force re-indexing even when the index looks current (optional, defaults to false)"`
}

// RefreshCatalogIndexOutput defines output for refresh_catalog_index tool
type RefreshCatalogIndexOutput struct {
	Updated          bool      `json:"updated"`
	LastUpdate       time.Time `json:"last_update"`
	FunctionsIndexed int       `json:"functions_indexed"`
	Message          string    `json:"message"`
}

// indexHolder manages concurrent access to the Bleve function index
type indexHolder struct {
	// current holds the active index pointer (atomic access for lock-free reads)
	current atomic.Pointer[Index]

	// refreshMu prevents concurrent refresh operations
	// NOT used for searches - they are lock-free via atomic pointer
	refreshMu sync.Mutex

	// wg tracks in-flight search operations for graceful cleanup of old indexes
	wg sync.WaitGroup
}

var (
	indexMgr *indexHolder
)

// catalogPath returns the location of the installed catalog file
func catalogPath() string {
	return filepath.Join(dataDir, catalogFile)
}

// InitializeFunctionSearch opens the function search index, rebuilding it
// from the installed catalog when missing, stale, or from an older schema.
func InitializeFunctionSearch() error {
	startTime := time.Now()
	log.Printf("Initializing function search...")

	// Initialize indexHolder if needed
	if indexMgr == nil {
		indexMgr = &indexHolder{}
	}

	indexPath := filepath.Join(dataDir, indexDir)

	// Acquire lock before accessing index
	log.Printf("Acquiring index lock...")
	lockStart := time.Now()
	if err := acquireLock(); err != nil {
		return fmt.Errorf("failed to acquire index lock: %w", err)
	}
	log.Printf("Lock acquired in %v", time.Since(lockStart).Round(time.Millisecond))

	// Strategy 1: Try to open local index (from a previous run or the indexer)
	if _, err := os.Stat(indexPath); err == nil {
		// Check index schema version
		currentVersion := search.ReadVersionFile(filepath.Join(dataDir, "search"))
		if currentVersion != search.IndexSchemaVersion {
			log.Printf("Index schema version mismatch (have: v%d, want: v%d), invalidating old index...",
				currentVersion, search.IndexSchemaVersion)
			os.RemoveAll(indexPath)
		} else {
			openStart := time.Now()
			index, err := bleve.Open(indexPath)
			if err == nil {
				wrapped := NewBleveIndexWrapper(index)
				indexMgr.current.Store(&wrapped)
				count, _ := wrapped.DocCount()
				elapsed := time.Since(startTime).Round(time.Millisecond)
				log.Printf("✓ Function search initialized (%d functions, local index v%d) in %v",
					count, search.IndexSchemaVersion, elapsed)

				// The catalog may have been regenerated since the index was built
				if needsRefresh() {
					log.Printf("ℹ️  Catalog is newer than the search index. Consider using refresh_catalog_index tool to update.")
				}

				return nil
			}

			// Index corrupted, remove it
			log.Printf("Warning: Local index corrupted (open failed in %v), removing...", time.Since(openStart).Round(time.Millisecond))
			os.RemoveAll(indexPath)
		}
	}

	// Strategy 2: Rebuild the index from the installed catalog
	log.Printf("No usable index found, rebuilding from catalog...")
	if err := rebuildIndexFromCatalog(); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	count := 0
	if indexPtr := indexMgr.current.Load(); indexPtr != nil {
		c, _ := (*indexPtr).DocCount()
		count = int(c)
	}
	elapsed := time.Since(startTime).Round(time.Millisecond)
	log.Printf("✓ Function search initialized (%d functions, rebuilt index) in %v", count, elapsed)

	return nil
}

// needsRefresh reports whether the catalog file is newer than the index
func needsRefresh() bool {
	catInfo, err := os.Stat(catalogPath())
	if err != nil {
		return false // No catalog installed, nothing to refresh from
	}

	idxInfo, err := os.Stat(filepath.Join(dataDir, indexDir))
	if err != nil {
		return true // No index yet
	}

	return catInfo.ModTime().After(idxInfo.ModTime())
}

// rebuildIndexFromCatalog reads the installed catalog, indexes every
// function into a temp location, and atomically swaps it into place.
func rebuildIndexFromCatalog() error {
	startTime := time.Now()

	cat, err := catalog.Load(catalogPath())
	if err != nil {
		return fmt.Errorf("failed to load catalog from %s (run the indexer first): %w", catalogPath(), err)
	}
	entries := search.BuildEntries(cat)

	indexPath := filepath.Join(dataDir, indexDir)
	tempIndexPath := indexPath + ".tmp"

	// Clean up any leftover temp index from previous crash
	os.RemoveAll(tempIndexPath)

	// Create directory for temp index
	if err := os.MkdirAll(filepath.Dir(tempIndexPath), 0755); err != nil {
		return fmt.Errorf("failed to create temp index directory: %w", err)
	}

	// Create new index in temp location
	log.Printf("Creating new index with %d functions in temp location...", len(entries))
	mapping := bleve.NewIndexMapping()
	newIndex, err := bleve.New(tempIndexPath, mapping)
	if err != nil {
		return fmt.Errorf("failed to create temp index: %w", err)
	}

	// Index all entries
	batch := newIndex.NewBatch()
	for i, entry := range entries {
		if err := batch.Index(entry.Name, entry); err != nil {
			newIndex.Close()
			os.RemoveAll(tempIndexPath)
			return fmt.Errorf("failed to add %s to batch: %w", entry.Name, err)
		}

		// Submit batch every 100 documents
		if i%100 == 0 && i > 0 {
			if err := newIndex.Batch(batch); err != nil {
				newIndex.Close()
				os.RemoveAll(tempIndexPath)
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = newIndex.NewBatch()
			log.Printf("Indexed %d/%d functions...", i, len(entries))
		}
	}

	// Submit remaining
	if batch.Size() > 0 {
		if err := newIndex.Batch(batch); err != nil {
			newIndex.Close()
			os.RemoveAll(tempIndexPath)
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}

	// Close temp index before moving
	if err := newIndex.Close(); err != nil {
		os.RemoveAll(tempIndexPath)
		return fmt.Errorf("failed to close temp index: %w", err)
	}

	// Atomic filesystem swap: rename temp to final location
	if err := os.RemoveAll(indexPath); err != nil && !os.IsNotExist(err) {
		os.RemoveAll(tempIndexPath)
		return fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.Rename(tempIndexPath, indexPath); err != nil {
		os.RemoveAll(tempIndexPath)
		return fmt.Errorf("failed to rename temp index: %w", err)
	}

	// Open the index from final location
	finalIndex, err := bleve.Open(indexPath)
	if err != nil {
		return fmt.Errorf("failed to open new index: %w", err)
	}

	// Wrap the index with our interface
	wrapped := NewBleveIndexWrapper(finalIndex)

	// ATOMIC SWAP: Replace the global index pointer
	oldIndexPtr := indexMgr.current.Swap(&wrapped)

	// Graceful cleanup of old index in background
	go func(oldPtr *Index) {
		if oldPtr == nil {
			return
		}

		// Wait for all in-flight searches on old index to complete
		indexMgr.wg.Wait()

		old := *oldPtr
		if err := old.Close(); err != nil {
			log.Printf("Warning: Error closing old index: %v", err)
		} else {
			log.Printf("✓ Old index closed successfully")
		}
	}(oldIndexPtr)

	// Write version file to mark this as current index version
	if err := search.WriteVersionFile(filepath.Join(dataDir, "search")); err != nil {
		log.Printf("Warning: Failed to write index version: %v", err)
	}

	elapsed := time.Since(startTime).Round(time.Millisecond)
	log.Printf("✓ Indexed %d functions in %v", len(entries), elapsed)

	return nil
}

// refreshCatalogIndex re-reads the catalog and rebuilds the search index
func refreshCatalogIndex(force bool) error {
	if !force && !needsRefresh() {
		log.Printf("Search index is current, skipping refresh")
		return nil
	}

	// Serialize refresh operations (prevent concurrent refreshes)
	indexMgr.refreshMu.Lock()
	defer indexMgr.refreshMu.Unlock()

	// Re-check after acquiring lock (double-checked locking pattern)
	// Another goroutine may have already refreshed while we were waiting
	if !force && !needsRefresh() {
		log.Printf("Index was refreshed by another goroutine, skipping")
		return nil
	}

	log.Printf("Starting catalog index refresh (force=%v)...", force)

	// Acquire inter-process lock for re-indexing (will wait if another process has it)
	if err := acquireLock(); err != nil {
		return fmt.Errorf("failed to acquire lock for refresh: %w", err)
	}
	// Note: Lock will be released by CloseFunctionSearch() when process exits

	if err := rebuildIndexFromCatalog(); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	return nil
}

// entryFromHit rebuilds a search.Entry from stored bleve hit fields
func entryFromHit(id string, fields map[string]interface{}) search.Entry {
	entry := search.Entry{Name: id}

	if name, ok := fields["name"].(string); ok {
		entry.Name = name
	}
	if category, ok := fields["category"].(string); ok {
		entry.Category = category
	}
	if categoryPath, ok := fields["category_path"].(string); ok {
		entry.CategoryPath = categoryPath
	}
	if description, ok := fields["description"].(string); ok {
		entry.Description = description
	}
	if prototype, ok := fields["prototype"].(string); ok {
		entry.Prototype = prototype
	}
	entry.Tags = stringSlice(fields["tags"])
	entry.Keywords = stringSlice(fields["keywords"])

	return entry
}

// stringSlice converts a stored bleve field to []string. Bleve returns a
// bare string when the indexed slice had a single element.
func stringSlice(field interface{}) []string {
	switch v := field.(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// currentIndex returns the active index, initializing the search system on
// first use when needed.
func currentIndex() (Index, error) {
	indexPtr := indexMgr.current.Load()

	// If index not initialized, try to initialize it now
	if indexPtr == nil {
		log.Printf("Function index not initialized, initializing now...")
		if err := InitializeFunctionSearch(); err != nil {
			return nil, fmt.Errorf("failed to initialize function index: %w", err)
		}
		// Reload after initialization
		indexPtr = indexMgr.current.Load()
		if indexPtr == nil {
			return nil, fmt.Errorf("index still nil after initialization")
		}
	}

	return *indexPtr, nil
}

// SearchFunctions searches through the library function catalog
func SearchFunctions(ctx context.Context, req *mcp.CallToolRequest, input SearchFunctionsInput) (*mcp.CallToolResult, SearchFunctionsOutput, error) {
	// Track in-flight searches for graceful cleanup (MUST be before Load)
	indexMgr.wg.Add(1)
	defer indexMgr.wg.Done()

	index, err := currentIndex()
	if err != nil {
		return nil, SearchFunctionsOutput{}, err
	}

	limit := input.MaxResults
	if limit == 0 || limit > 20 {
		limit = maxResults
	}

	// Create search query
	match := bleve.NewMatchQuery(input.Query)
	var searchReq *bleve.SearchRequest
	if input.Category != "" {
		catQuery := bleve.NewMatchQuery(input.Category)
		catQuery.SetField("category")
		searchReq = bleve.NewSearchRequest(bleve.NewConjunctionQuery(match, catQuery))
	} else {
		searchReq = bleve.NewSearchRequest(match)
	}
	searchReq.Size = limit
	searchReq.Fields = []string{"*"}

	// Execute search on current index
	searchResults, err := index.Search(searchReq)
	if err != nil {
		return nil, SearchFunctionsOutput{}, fmt.Errorf("search failed: %w", err)
	}

	// Convert to output format
	results := make([]FunctionResult, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		results = append(results, FunctionResult{
			Entry: entryFromHit(hit.ID, hit.Fields),
			Score: hit.Score,
		})
	}

	output := SearchFunctionsOutput{
		Results:   results,
		Query:     input.Query,
		TotalHits: int(searchResults.Total),
	}

	return nil, output, nil
}

// LookupFunction returns the full catalog record for one function
func LookupFunction(ctx context.Context, req *mcp.CallToolRequest, input LookupFunctionInput) (*mcp.CallToolResult, LookupFunctionOutput, error) {
	cat, err := catalog.Load(catalogPath())
	if err != nil {
		return nil, LookupFunctionOutput{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	rec, ok := cat.Functions[input.Name]
	if !ok {
		return nil, LookupFunctionOutput{Found: false}, nil
	}

	return nil, LookupFunctionOutput{Found: true, Function: rec}, nil
}

// ListCategories lists every category path with its function count
func ListCategories(ctx context.Context, req *mcp.CallToolRequest, input ListCategoriesInput) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	cat, err := catalog.Load(catalogPath())
	if err != nil {
		return nil, ListCategoriesOutput{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	counts := make(map[string]int)
	for _, rec := range cat.Functions {
		path := rec.CategoryPath
		if path == "" {
			path = rec.Category
		}
		counts[path]++
	}

	categories := make([]CategoryInfo, 0, len(counts))
	for _, path := range cat.CategoryPaths() {
		categories = append(categories, CategoryInfo{Path: path, Functions: counts[path]})
	}

	return nil, ListCategoriesOutput{Categories: categories, Total: len(cat.Functions)}, nil
}

// RefreshCatalogIndex forces a rebuild of the function search index
func RefreshCatalogIndex(ctx context.Context, req *mcp.CallToolRequest, input RefreshCatalogIndexInput) (*mcp.CallToolResult, RefreshCatalogIndexOutput, error) {
	output := RefreshCatalogIndexOutput{
		Updated: false,
	}

	// Check if refresh needed
	if !input.Force && !needsRefresh() {
		if info, err := os.Stat(filepath.Join(dataDir, indexDir)); err == nil {
			output.LastUpdate = info.ModTime()
			output.Message = fmt.Sprintf("Index is current (last built: %s)", info.ModTime().Format(time.RFC3339))
			return nil, output, nil
		}
	}

	// Perform refresh
	if err := refreshCatalogIndex(input.Force); err != nil {
		return nil, output, fmt.Errorf("refresh failed: %w", err)
	}

	// Count functions from current index
	indexPtr := indexMgr.current.Load()
	if indexPtr != nil {
		index := *indexPtr
		count, _ := index.DocCount()
		output.FunctionsIndexed = int(count)
	}

	output.Updated = true
	output.LastUpdate = time.Now()
	output.Message = fmt.Sprintf("Catalog index refreshed successfully, %d functions indexed", output.FunctionsIndexed)

	return nil, output, nil
}

// RegisterFunctionSearchTools registers the catalog search tools
func RegisterFunctionSearchTools(server *mcp.Server) error {
	// Initialize function search synchronously
	if err := InitializeFunctionSearch(); err != nil {
		log.Printf("Warning: Function search initialization failed: %v", err)
		log.Printf("Function search will attempt to initialize on first use")
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_functions",
			Description: "Search library functions by name, tag, keyword, or description using full-text search.",
		},
		SearchFunctions,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "lookup_function",
			Description: "Return the full documentation record for one function by exact name.",
		},
		LookupFunction,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_categories",
			Description: "List every category path in the catalog with its function count.",
		},
		ListCategories,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "refresh_catalog_index",
			Description: "Rebuild the search index from the installed catalog (auto-runs when the catalog is newer than the index)",
		},
		RefreshCatalogIndex,
	)

	return nil
}

// CloseFunctionSearch closes the search index and releases the lock
func CloseFunctionSearch() error {
	var closeErr error

	// Close index gracefully
	if indexMgr != nil {
		// Atomically swap index to nil (prevents new searches)
		indexPtr := indexMgr.current.Swap(nil)

		if indexPtr != nil {
			log.Printf("Waiting for in-flight searches to complete before closing...")

			// Wait for all in-flight searches to complete
			indexMgr.wg.Wait()

			// Now safe to close index
			index := *indexPtr
			closeErr = index.Close()
			if closeErr != nil {
				log.Printf("Error closing function index: %v", closeErr)
			} else {
				log.Printf("✓ Function index closed successfully")
			}
		}
	}

	// Always attempt to release inter-process lock, even if close failed
	if err := releaseLock(); err != nil {
		log.Printf("Error releasing lock: %v", err)
		if closeErr == nil {
			closeErr = err
		}
	}

	return closeErr
}
