package tree

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mdreader/mdr/internal/session"
)

// stubDecorator decorates from fixed maps, standing in for the session model.
type stubDecorator struct {
	markers  map[string]session.MarkColor
	expanded map[string]bool
}

func (d stubDecorator) Marker(path string) session.MarkColor { return d.markers[path] }
func (d stubDecorator) Expanded(path string) bool            { return d.expanded[path] }

var noDecoration = stubDecorator{}

func TestProject_FiltersAndOrders(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "sub"), 0755)
	os.WriteFile(filepath.Join(root, "a.md"), []byte("# a"), 0644)
	os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0644)

	node, err := Project(root, []string{".md"}, noDecoration)
	if err != nil {
		t.Fatal(err)
	}

	if len(node.Children) != 2 {
		t.Fatalf("got %d children, want 2 (sub, a.md)", len(node.Children))
	}
	if node.Children[0].Name != "sub" || !node.Children[0].IsDir {
		t.Errorf("first child = %q (dir=%v), want directory sub", node.Children[0].Name, node.Children[0].IsDir)
	}
	if node.Children[1].Name != "a.md" || node.Children[1].IsDir {
		t.Errorf("second child = %q, want file a.md", node.Children[1].Name)
	}
}

func TestProject_ExtensionCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "UPPER.MD"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(root, "lower.md"), []byte("x"), 0644)

	node, err := Project(root, []string{".md"}, noDecoration)
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Children) != 2 {
		t.Errorf("got %d children, want both .MD and .md files", len(node.Children))
	}
}

func TestProject_OrderingCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"Zebra.md", "apple.md", "Mango.md"} {
		os.WriteFile(filepath.Join(root, name), []byte("x"), 0644)
	}

	node, err := Project(root, []string{".md"}, noDecoration)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, c := range node.Children {
		got = append(got, c.Name)
	}
	want := []string{"apple.md", "Mango.md", "Zebra.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestProject_Deterministic(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "nested", "deep"), 0755)
	os.WriteFile(filepath.Join(root, "nested", "n.md"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(root, "top.md"), []byte("x"), 0644)

	dec := stubDecorator{
		markers:  map[string]session.MarkColor{filepath.Join(root, "top.md"): session.MarkGreen},
		expanded: map[string]bool{filepath.Join(root, "nested"): true},
	}

	first, err := Project(root, []string{".md"}, dec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Project(root, []string{".md"}, dec)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two projections over unchanged inputs differ")
	}
}

func TestProject_Decoration(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "dir"), 0755)
	os.WriteFile(filepath.Join(root, "marked.md"), []byte("x"), 0644)

	dec := stubDecorator{
		markers:  map[string]session.MarkColor{filepath.Join(root, "marked.md"): session.MarkRed},
		expanded: map[string]bool{filepath.Join(root, "dir"): true},
	}

	node, err := Project(root, []string{".md"}, dec)
	if err != nil {
		t.Fatal(err)
	}

	if node.Children[0].Name != "dir" || !node.Children[0].Expanded {
		t.Error("expanded decoration not applied to directory")
	}
	if node.Children[1].Marker != session.MarkRed {
		t.Errorf("marker = %q, want red", node.Children[1].Marker)
	}
}

func TestProject_UnreadableDirBecomesLeaf(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	os.MkdirAll(locked, 0755)
	os.WriteFile(filepath.Join(locked, "hidden.md"), []byte("x"), 0644)
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	node, err := Project(root, []string{".md"}, noDecoration)
	if err != nil {
		t.Fatal(err)
	}

	if len(node.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(node.Children))
	}
	child := node.Children[0]
	if !child.Unreadable {
		t.Error("unreadable directory not flagged")
	}
	if len(child.Children) != 0 {
		t.Error("unreadable directory should be an empty leaf")
	}
}

func TestVisible_DescendsOnlyExpanded(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "open"), 0755)
	os.MkdirAll(filepath.Join(root, "shut"), 0755)
	os.WriteFile(filepath.Join(root, "open", "o.md"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(root, "shut", "s.md"), []byte("x"), 0644)

	dec := stubDecorator{expanded: map[string]bool{filepath.Join(root, "open"): true}}
	node, err := Project(root, []string{".md"}, dec)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, n := range node.Visible() {
		names = append(names, n.Name)
	}
	want := []string{"open", "o.md", "shut"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("visible = %v, want %v", names, want)
	}
}

func TestPaths_CoversEveryNode(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "d"), 0755)
	os.WriteFile(filepath.Join(root, "d", "f.md"), []byte("x"), 0644)

	node, err := Project(root, []string{".md"}, noDecoration)
	if err != nil {
		t.Fatal(err)
	}

	paths := node.Paths()
	for _, p := range []string{root, filepath.Join(root, "d"), filepath.Join(root, "d", "f.md")} {
		abs, _ := filepath.Abs(p)
		if _, ok := paths[abs]; !ok {
			t.Errorf("missing path %s", abs)
		}
	}
}

func TestRename_MigratesPath(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "old.md")
	os.WriteFile(old, []byte("x"), 0644)

	newPath, err := Rename(old, "new.md")
	if err != nil {
		t.Fatal(err)
	}
	if newPath != filepath.Join(root, "new.md") {
		t.Errorf("newPath = %q", newPath)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old file still exists")
	}
}

func TestRename_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.md")
	os.WriteFile(a, []byte("a"), 0644)
	os.WriteFile(filepath.Join(root, "b.md"), []byte("b"), 0644)

	if _, err := Rename(a, "b.md"); err == nil {
		t.Error("expected error renaming over an existing file")
	}
}

func TestCreateFile_AppendsExtension(t *testing.T) {
	root := t.TempDir()

	path, err := CreateFile(root, "notes", []string{".md", ".markdown"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "notes.md" {
		t.Errorf("created %q, want notes.md", filepath.Base(path))
	}
}
