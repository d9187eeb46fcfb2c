package catalog

import (
	"sort"
	"strings"
)

// CategoryNode is one node of the derived category hierarchy. The tree is
// a pure path-prefix view over category_path values: every strict prefix
// of a path is itself a node. It is recomputed on demand and never
// persisted; the renderer rebuilds it from the flat catalog.
type CategoryNode struct {
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Children []*CategoryNode `json:"children,omitempty"`

	// Functions lists the names of records whose effective category path
	// equals Path exactly, in discovery order.
	Functions []string `json:"functions,omitempty"`
}

func (n *CategoryNode) child(name string) *CategoryNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	path := name
	if n.Path != "" {
		path = n.Path + PathSeparator + name
	}
	c := &CategoryNode{Name: name, Path: path}
	n.Children = append(n.Children, c)
	return c
}

func (n *CategoryNode) sortChildren() {
	sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].Name < n.Children[j].Name })
	for _, c := range n.Children {
		c.sortChildren()
	}
}

// BuildCategoryTree materializes the prefix tree for a set of category
// paths. Children are sorted by name; the root node has an empty path.
func BuildCategoryTree(paths []string) *CategoryNode {
	root := &CategoryNode{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		node := root
		for _, seg := range strings.Split(p, PathSeparator) {
			if seg == "" {
				continue
			}
			node = node.child(seg)
		}
	}
	root.sortChildren()
	return root
}

// CategoryTree builds the navigation tree for this catalog and attaches
// each function name, in discovery order, to the node matching its
// effective category path.
func (c *Catalog) CategoryTree() *CategoryNode {
	root := BuildCategoryTree(c.CategoryPaths())
	byPath := make(map[string]*CategoryNode)
	var walk func(n *CategoryNode)
	walk = func(n *CategoryNode) {
		byPath[n.Path] = n
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	walk(root)

	for _, name := range c.Order {
		rec := c.Functions[name]
		if rec == nil {
			continue
		}
		p := rec.CategoryPath
		if p == "" {
			p = rec.Category
		}
		if node, ok := byPath[p]; ok {
			node.Functions = append(node.Functions, name)
		}
	}
	return root
}
