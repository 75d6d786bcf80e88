package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdreader/mdr/internal/session"
)

// Decorator supplies per-path decoration for the projection. The
// session model satisfies it; tests can use a stub.
type Decorator interface {
	Marker(path string) session.MarkColor
	Expanded(path string) bool
}

// Node is one entry in the projected tree.
type Node struct {
	Name       string
	Path       string // absolute
	IsDir      bool
	Marker     session.MarkColor
	Expanded   bool
	Unreadable bool // directory listing failed; rendered as an empty leaf
	Children   []*Node
}

// Project builds the display tree for root: directories always appear,
// files only when their extension matches exts (case-insensitive).
// Every level is ordered directories-first, then case-insensitive by
// name, independent of filesystem enumeration order. The projection is
// pure: the same filesystem state and decorator state always yield an
// identical tree.
func Project(root string, exts []string, dec Decorator) (*Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	node := &Node{
		Name:     filepath.Base(abs),
		Path:     abs,
		IsDir:    true,
		Expanded: true, // the opened root is always shown expanded
	}
	fillChildren(node, exts, dec)
	return node, nil
}

func fillChildren(dir *Node, exts []string, dec Decorator) {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		// A directory that became unreadable mid-scan (permission
		// revoked, deleted concurrently) stays in the tree as an empty
		// leaf instead of aborting the whole projection.
		dir.Unreadable = true
		return
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir.Path, name)

		if e.IsDir() {
			child := &Node{
				Name:     name,
				Path:     path,
				IsDir:    true,
				Expanded: dec.Expanded(path),
			}
			fillChildren(child, exts, dec)
			dir.Children = append(dir.Children, child)
			continue
		}

		if !matchExt(name, exts) {
			continue
		}
		dir.Children = append(dir.Children, &Node{
			Name:   name,
			Path:   path,
			Marker: dec.Marker(path),
		})
	}

	sort.SliceStable(dir.Children, func(i, j int) bool {
		a, b := dir.Children[i], dir.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.Name < b.Name
	})
}

func matchExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Paths returns the set of every path in the tree, used for
// reconciling session-state entries against the live filesystem.
func (n *Node) Paths() map[string]struct{} {
	out := make(map[string]struct{})
	n.walk(func(node *Node) { out[node.Path] = struct{}{} })
	return out
}

// Visible flattens the tree into display order, descending only into
// expanded directories. The root itself is not included.
func (n *Node) Visible() []*Node {
	var out []*Node
	var descend func(dir *Node)
	descend = func(dir *Node) {
		for _, c := range dir.Children {
			out = append(out, c)
			if c.IsDir && c.Expanded {
				descend(c)
			}
		}
	}
	descend(n)
	return out
}

// Depth returns how many levels below root a path sits.
func (n *Node) Depth(path string) int {
	rel, err := filepath.Rel(n.Path, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator))
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}
