package parse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// LibraryDirName is the conventional library subdirectory preferred as
	// the category root when present under the source tree.
	LibraryDirName = "libft"

	// maxCategoryScanDepth caps the recursive probe that decides whether a
	// directory contains any source files. Generous on purpose; real trees
	// are two or three levels deep.
	maxCategoryScanDepth = 8
)

// excludedDirs are build/output/tooling/version-control directories that
// never count as categories.
var excludedDirs = map[string]struct{}{
	"obj":          {},
	"build":        {},
	"dist":         {},
	"out":          {},
	"target":       {},
	".git":         {},
	"node_modules": {},
	"docs":         {},
}

// ResolveRoot prefers the conventional library subdirectory as the
// category root when one exists, otherwise the source directory itself.
func ResolveRoot(sourceDir string) string {
	lib := filepath.Join(sourceDir, LibraryDirName)
	if info, err := os.Stat(lib); err == nil && info.IsDir() {
		return lib
	}
	return sourceDir
}

// DiscoverCategories returns the sorted, deduplicated names of immediate
// subdirectories of root that hold at least one source or header file.
// Hidden and excluded directories are skipped; unreadable subdirectories
// are skipped rather than failing the scan. An unreadable root is an
// error (the caller treats it as fatal).
func DiscoverCategories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, excluded := excludedDirs[name]; excluded {
			continue
		}
		if containsSource(filepath.Join(root, name), maxCategoryScanDepth) {
			seen[name] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for name := range seen {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories, nil
}

// containsSource reports whether dir holds a .c or .h file anywhere within
// the depth budget. Unreadable directories count as empty.
func containsSource(dir string, depth int) bool {
	if depth <= 0 {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if containsSource(filepath.Join(dir, entry.Name()), depth-1) {
				return true
			}
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".c", ".h":
			return true
		}
	}
	return false
}
