package tools

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/libft-tools/libdoc/internal/catalog"
)

// installTestCatalog writes a small catalog into dataDir's expected spot.
func installTestCatalog(t *testing.T) {
	t.Helper()
	c := catalog.New("libft", "1.0.0", "test", "tester")
	c.Insert(&catalog.FunctionRecord{
		Name:         "ft_strlen",
		Category:     "strings",
		CategoryPath: "strings",
		Tags:         []string{"string", "basic"},
		Prototype:    "size_t ft_strlen(const char *s)",
		Description:  "Computes the length of the string s.",
	})
	c.Insert(&catalog.FunctionRecord{
		Name:         "ft_memcpy",
		Category:     "memory",
		CategoryPath: "memory",
		Tags:         []string{"memory", "basic"},
		Prototype:    "void *ft_memcpy(void *dst, const void *src, size_t n)",
		Description:  "Copies n bytes from src to dst.",
	})

	path := catalogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create catalog dir: %v", err)
	}
	if err := c.Save(path); err != nil {
		t.Fatalf("Failed to save catalog: %v", err)
	}
}

// useTempData points the package at a throwaway data directory.
func useTempData(t *testing.T) {
	t.Helper()
	oldDataDir := dataDir
	oldMgr := indexMgr
	dataDir = t.TempDir()
	indexMgr = &indexHolder{}
	t.Cleanup(func() {
		dataDir = oldDataDir
		indexMgr = oldMgr
	})
}

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		field interface{}
		want  []string
	}{
		{"nil field", nil, nil},
		{"single value stored as string", "basic", []string{"basic"}},
		{"slice of values", []interface{}{"string", "basic"}, []string{"string", "basic"}},
		{"mixed types filtered", []interface{}{"string", 42}, []string{"string"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringSlice(tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEntryFromHit(t *testing.T) {
	fields := map[string]interface{}{
		"name":          "ft_strlen",
		"category":      "strings",
		"category_path": "strings",
		"description":   "Computes the length of the string s.",
		"prototype":     "size_t ft_strlen(const char *s)",
		"tags":          []interface{}{"string", "basic"},
		"keywords":      "strlen",
	}

	entry := entryFromHit("ft_strlen", fields)
	if entry.Name != "ft_strlen" || entry.Category != "strings" {
		t.Errorf("Unexpected identity: %s / %s", entry.Name, entry.Category)
	}
	if !reflect.DeepEqual(entry.Tags, []string{"string", "basic"}) {
		t.Errorf("Unexpected tags: %v", entry.Tags)
	}
	if !reflect.DeepEqual(entry.Keywords, []string{"strlen"}) {
		t.Errorf("Unexpected keywords: %v", entry.Keywords)
	}
}

func TestNeedsRefresh(t *testing.T) {
	useTempData(t)

	// No catalog installed: nothing to refresh from
	if needsRefresh() {
		t.Error("Expected no refresh without a catalog")
	}

	installTestCatalog(t)

	// Catalog present, no index yet
	if !needsRefresh() {
		t.Error("Expected refresh with a catalog but no index")
	}

	// Index newer than the catalog
	indexPath := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(indexPath, 0755); err != nil {
		t.Fatalf("Failed to create index dir: %v", err)
	}
	future := time.Now().Add(time.Hour)
	os.Chtimes(indexPath, future, future)
	if needsRefresh() {
		t.Error("Expected no refresh when the index is newer than the catalog")
	}
}

func TestRebuildAndSearch(t *testing.T) {
	useTempData(t)
	installTestCatalog(t)

	if err := rebuildIndexFromCatalog(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	defer CloseFunctionSearch()

	indexPtr := indexMgr.current.Load()
	if indexPtr == nil {
		t.Fatal("Expected an active index after rebuild")
	}
	count, err := (*indexPtr).DocCount()
	if err != nil {
		t.Fatalf("DocCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 indexed functions, got %d", count)
	}

	_, out, err := SearchFunctions(context.Background(), nil, SearchFunctionsInput{Query: "strlen"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.TotalHits == 0 {
		t.Fatal("Expected at least one hit for 'strlen'")
	}
	if out.Results[0].Entry.Name != "ft_strlen" {
		t.Errorf("Expected top hit ft_strlen, got %s", out.Results[0].Entry.Name)
	}

	t.Run("category filter", func(t *testing.T) {
		_, out, err := SearchFunctions(context.Background(), nil, SearchFunctionsInput{
			Query:    "basic",
			Category: "memory",
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		for _, res := range out.Results {
			if res.Entry.Category != "memory" {
				t.Errorf("Expected only memory results, got %s (%s)", res.Entry.Name, res.Entry.Category)
			}
		}
	})
}

func TestLookupFunction(t *testing.T) {
	useTempData(t)
	installTestCatalog(t)

	_, out, err := LookupFunction(context.Background(), nil, LookupFunctionInput{Name: "ft_strlen"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !out.Found || out.Function == nil {
		t.Fatal("Expected ft_strlen to be found")
	}
	if out.Function.Prototype != "size_t ft_strlen(const char *s)" {
		t.Errorf("Unexpected prototype: %q", out.Function.Prototype)
	}

	_, out, err = LookupFunction(context.Background(), nil, LookupFunctionInput{Name: "ft_missing"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if out.Found {
		t.Error("Expected ft_missing to be absent")
	}
}

func TestListCategories(t *testing.T) {
	useTempData(t)
	installTestCatalog(t)

	_, out, err := ListCategories(context.Background(), nil, ListCategoriesInput{})
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("Expected 2 functions total, got %d", out.Total)
	}

	want := []CategoryInfo{
		{Path: "memory", Functions: 1},
		{Path: "strings", Functions: 1},
	}
	if !reflect.DeepEqual(out.Categories, want) {
		t.Errorf("Expected categories %v, got %v", want, out.Categories)
	}
}

func TestIndexSwapClosesOldIndex(t *testing.T) {
	useTempData(t)

	old := newMockIndex(1)
	var oldWrapped Index = old
	indexMgr.current.Store(&oldWrapped)

	// Simulate the swap rebuildIndexFromCatalog performs
	replacement := newMockIndex(2)
	var newWrapped Index = replacement
	oldPtr := indexMgr.current.Swap(&newWrapped)

	indexMgr.wg.Wait()
	if oldPtr == nil {
		t.Fatal("Expected the old index pointer back from the swap")
	}
	(*oldPtr).Close()

	if !old.IsClosed() {
		t.Error("Expected the old index to be closed after the swap")
	}
	if replacement.IsClosed() {
		t.Error("Expected the new index to stay open")
	}
}
