package parse_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/libft-tools/libdoc/internal/parse"
)

const strlenSource = `/**
** Computes the length of the null-terminated string s.
*/

size_t	ft_strlen(const char *s)
{
	size_t	i;

	i = 0;
	while (s[i])
		i++;
	return (i);
}
`

const strdupSource = `// Allocates and returns a duplicate of the string s.
char	*ft_strdup(const char *s)
{
	char	*dup;

	dup = malloc(ft_strlen(s) + 1);
	while (*s)
		*dup++ = *s++;
	return (dup);
}
`

const headerSource = `#ifndef LIBFT_H
# define LIBFT_H

size_t	ft_strlen(const char *s);
int		ft_atoi(const char *str);

#endif
`

// fixtureTree builds a realistic source layout and returns its root.
func fixtureTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "libft/alpha/ft_dup.c", "char *ft_dup(char *s)\n{\n\treturn (s);\n}\n")
	writeFile(t, dir, "libft/beta/ft_dup.c", "int ft_dup(int n)\n{\n\treturn (n);\n}\n")
	writeFile(t, dir, "libft/strings/ft_strlen.c", strlenSource)
	writeFile(t, dir, "libft/strings/ft_strdup.c", strdupSource)
	writeFile(t, dir, "libft/libft.h", headerSource)
	writeFile(t, dir, "libft/main.c", "int main(void)\n{\n\treturn (0);\n}\n")
	return dir
}

func TestParsePipeline(t *testing.T) {
	cat, err := parse.New(fixtureTree(t)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("Catalog failed validation: %v", err)
	}

	if cat.Name != "libft" || cat.Version != "1.0.0" {
		t.Errorf("Expected libft v1.0.0, got %s v%s", cat.Name, cat.Version)
	}

	// Discovery order: per-directory lexicographic walk, headers after
	// implementations
	wantOrder := []string{"ft_dup", "ft_strdup", "ft_strlen", "ft_atoi"}
	if !reflect.DeepEqual(cat.Order, wantOrder) {
		t.Fatalf("Expected order %v, got %v", wantOrder, cat.Order)
	}

	wantCategories := []string{"alpha", "beta", "strings"}
	if !reflect.DeepEqual(cat.Categories, wantCategories) {
		t.Errorf("Expected categories %v, got %v", wantCategories, cat.Categories)
	}

	t.Run("first seen wins across categories", func(t *testing.T) {
		dup := cat.Functions["ft_dup"]
		if dup.Category != "alpha" {
			t.Errorf("Expected first-walked category 'alpha', got %q", dup.Category)
		}
	})

	t.Run("entry point is skipped", func(t *testing.T) {
		if cat.Contains("main") {
			t.Error("Expected main.c to be skipped")
		}
	})

	t.Run("implementation record is complete", func(t *testing.T) {
		rec := cat.Functions["ft_strlen"]
		if rec.Prototype != "size_t\tft_strlen(const char *s)" {
			t.Errorf("Unexpected prototype: %q", rec.Prototype)
		}
		if rec.Description != "Computes the length of the null-terminated string s." {
			t.Errorf("Unexpected description: %q", rec.Description)
		}
		if !reflect.DeepEqual(rec.Tags, []string{"string", "iteration", "basic"}) {
			t.Errorf("Unexpected tags: %v", rec.Tags)
		}
		if rec.CategoryPath != "strings" {
			t.Errorf("Expected category_path 'strings', got %q", rec.CategoryPath)
		}
		if rec.ReturnValue != parse.ReturnValuePlaceholder {
			t.Errorf("Unexpected return value: %q", rec.ReturnValue)
		}
		if len(rec.Examples) != 1 || !strings.Contains(rec.Examples[0].Title, "ft_strlen") {
			t.Errorf("Expected one generated example, got %v", rec.Examples)
		}
	})

	t.Run("declared-only function recovered from header", func(t *testing.T) {
		rec := cat.Functions["ft_atoi"]
		if rec == nil {
			t.Fatal("Expected ft_atoi from the header declaration")
		}
		if rec.Category != "misc" {
			t.Errorf("Expected root-level header to land in 'misc', got %q", rec.Category)
		}
		if rec.CategoryPath != "" {
			t.Errorf("Expected empty category_path, got %q", rec.CategoryPath)
		}
		if rec.Prototype != "int\t\tft_atoi(const char *str)" {
			t.Errorf("Expected the declaration prototype, got %q", rec.Prototype)
		}
	})
}

func TestParseAppliesManualOverrides(t *testing.T) {
	dir := fixtureTree(t)
	writeFile(t, dir, "libft/manual/ft_strlen.json", `{
  "name": "ft_strlen",
  "category": "strings",
  "category_path": "strings",
  "tags": ["string", "basic"],
  "prototype": "size_t ft_strlen(const char *s)",
  "description": "Hand-written description.",
  "return_value": "The number of characters before the terminator.",
  "complexity": "O(n)"
}`)

	cat, err := parse.New(dir).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec := cat.Functions["ft_strlen"]
	if rec.Description != "Hand-written description." {
		t.Errorf("Expected override description, got %q", rec.Description)
	}
	if rec.Complexity == nil || *rec.Complexity != "O(n)" {
		t.Errorf("Expected complexity O(n), got %v", rec.Complexity)
	}

	// Whole-record replacement: the generated example is gone
	if len(rec.Examples) != 0 {
		t.Errorf("Expected override to replace the record wholesale, got examples %v", rec.Examples)
	}

	// Order position is fixed at first discovery
	wantOrder := []string{"ft_dup", "ft_strdup", "ft_strlen", "ft_atoi"}
	if !reflect.DeepEqual(cat.Order, wantOrder) {
		t.Errorf("Expected order %v, got %v", wantOrder, cat.Order)
	}
}

func TestParseMissingSourceDir(t *testing.T) {
	if _, err := parse.New("/nonexistent/source/tree").Parse(); err == nil {
		t.Error("Expected error for missing source directory, got nil")
	}
}
