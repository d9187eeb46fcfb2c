package parse

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// sourceFile is one implementation or header file found under the root.
type sourceFile struct {
	AbsPath string
	RelPath string // slash-separated, relative to the walk root
}

// collectSources enumerates .c and .h files beneath root in deterministic
// per-directory lexicographic order, following symbolic links. Directories
// already visited through another link are skipped so link cycles cannot
// recurse forever. Individual unreadable directories are logged and
// skipped; an unreadable root is an error.
func collectSources(root string) (impl, hdr []sourceFile, err error) {
	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, nil, err
	}
	visited := map[string]struct{}{rootReal: {}}

	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("Warning: skipping unreadable directory %s: %v", dir, err)
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			abs := filepath.Join(dir, name)
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}

			isDir := entry.IsDir()
			if entry.Type()&os.ModeSymlink != 0 {
				info, err := os.Stat(abs)
				if err != nil {
					continue // dangling link
				}
				isDir = info.IsDir()
			}

			if isDir {
				real, err := filepath.EvalSymlinks(abs)
				if err != nil {
					continue
				}
				if _, seen := visited[real]; seen {
					continue
				}
				visited[real] = struct{}{}
				walk(abs, childRel)
				continue
			}

			switch strings.ToLower(filepath.Ext(name)) {
			case ".c":
				impl = append(impl, sourceFile{AbsPath: abs, RelPath: childRel})
			case ".h":
				hdr = append(hdr, sourceFile{AbsPath: abs, RelPath: childRel})
			}
		}
	}

	if _, err := os.ReadDir(root); err != nil {
		return nil, nil, err
	}
	walk(root, "")
	return impl, hdr, nil
}

// splitCategory derives the flat category and the nested category path
// from a file's walk-relative path. Files sitting directly under the root
// fall into the "misc" category with an empty path.
func splitCategory(relPath string) (category, categoryPath string) {
	dir := ""
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		dir = relPath[:i]
	}
	if dir == "" {
		return "misc", ""
	}
	segs := strings.Split(dir, "/")
	return segs[0], strings.Join(segs, "/")
}
