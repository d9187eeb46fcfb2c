package parse_test

import (
	"testing"

	"github.com/libft-tools/libdoc/internal/parse"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "doc block comment",
			content: "/**\n** Computes the length of the string s.\n*/\nsize_t ft_strlen(const char *s);\n",
			want:    "Computes the length of the string s.",
		},
		{
			name:    "plain block comment",
			content: "/* Copies n bytes from src to dst. */\nvoid *ft_memcpy(void *dst, const void *src, size_t n);\n",
			want:    "Copies n bytes from src to dst.",
		},
		{
			name:    "line comment",
			content: "// Allocates and returns a duplicate of the string s.\nchar *ft_strdup(const char *s);\n",
			want:    "Allocates and returns a duplicate of the string s.",
		},
		{
			name:    "multi-line body joined with spaces",
			content: "/*\n** Splits the string s\n** using the delimiter c.\n*/\n",
			want:    "Splits the string s using the delimiter c.",
		},
		{
			name:    "no comment at all",
			content: "int ft_atoi(const char *str);\n",
			want:    parse.NoDescription,
		},
		{
			name:    "too short to be prose",
			content: "// stub\nint ft_abs(int n);\n",
			want:    parse.NoDescription,
		},
		{
			name:    "banner skipped in favor of later prose",
			content: "/* ************************************************************************** */\n// Reverses the string in place without allocating.\n",
			want:    "Reverses the string in place without allocating.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse.ExtractDescription(tt.content)
			if got != tt.want {
				t.Errorf("Expected description %q, got %q", tt.want, got)
			}
		})
	}
}
