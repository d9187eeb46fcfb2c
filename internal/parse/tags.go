package parse

import "strings"

// Difficulty tag values, exactly one of which terminates every tag set.
const (
	TagBasic        = "basic"
	TagIntermediate = "intermediate"
	TagAdvanced     = "advanced"
)

// tagRule is one independent matcher of the classification rule set. Each
// rule fires at most once, in declaration order.
type tagRule struct {
	match func(s string) bool
	tag   string
}

func hasPrefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// nameTagRules classify by function name.
var nameTagRules = []tagRule{
	{hasPrefix("ft_str"), "string"},
	{hasPrefix("ft_mem"), "memory"},
	{hasPrefix("ft_is"), "validation"},
	{hasPrefix("ft_to"), "conversion"},
	{contains("printf"), "output"},
	{contains("scanf"), "input"},
	{contains("list"), "linked_list"},
	{contains("queue"), "queue"},
	{contains("vector"), "vector"},
	{contains("matrix"), "matrix"},
	{contains("sort"), "sorting"},
	{contains("search"), "searching"},
	{contains("map"), "data_structure"},
	{contains("window"), "graphics"},
	{contains("render"), "rendering"},
	{containsAny("pool", "arena", "slab"), "memory_management"},
}

// contentTagRules classify by file content.
var contentTagRules = []tagRule{
	{contains("malloc"), "allocation"},
	{contains("free"), "cleanup"},
	{containsAny("while", "for"), "iteration"},
	{containsAny("recursive", "recursion"), "recursion"},
	{contains("mlx_"), "minilibx"},
	{contains("pthread"), "threading"},
}

// ClassifyTags derives the tag set for a function from its name and file
// content, then appends exactly one difficulty tag: advanced when the
// function recurses or touches threading, intermediate when it allocates
// or manages a generic data structure, basic otherwise.
func ClassifyTags(name, content string) []string {
	tags := []string{}
	for _, rule := range nameTagRules {
		if rule.match(name) {
			tags = append(tags, rule.tag)
		}
	}
	for _, rule := range contentTagRules {
		if rule.match(content) {
			tags = append(tags, rule.tag)
		}
	}

	switch {
	case hasTag(tags, "recursion") || hasTag(tags, "threading"):
		tags = append(tags, TagAdvanced)
	case hasTag(tags, "allocation") || hasTag(tags, "data_structure"):
		tags = append(tags, TagIntermediate)
	default:
		tags = append(tags, TagBasic)
	}
	return tags
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
