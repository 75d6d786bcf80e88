package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderBody_GFM(t *testing.T) {
	r := New()

	src := []byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n")
	body, err := r.RenderBody(src)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"<h1", "Title", "<table>", "<del>gone</del>"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderBody_FencedCodeLanguageClass(t *testing.T) {
	r := New()

	body, err := r.RenderBody([]byte("```go\nfmt.Println(1)\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, `language-go`) {
		t.Errorf("fenced block missing language class:\n%s", body)
	}
}

func TestRenderDocument_ThemeAndFonts(t *testing.T) {
	r := New()

	doc, err := r.RenderDocument([]byte("hello"), Options{
		Theme:        "dark",
		Title:        "notes.md",
		BodyFontSize: 18,
		CodeFontSize: 13,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(doc, "<!DOCTYPE html>") {
		t.Error("not a full document")
	}
	if !strings.Contains(doc, "<title>notes.md</title>") {
		t.Error("title missing")
	}
	if !strings.Contains(doc, "font-size: 18px") {
		t.Error("body font size not applied")
	}
	if !strings.Contains(doc, "font-size: 13px") {
		t.Error("code font size not applied")
	}
	if !strings.Contains(doc, darkPalette.bg) {
		t.Error("dark background not applied")
	}
}

func TestRenderDocument_HighlightAssets(t *testing.T) {
	r := New()

	withAssets, err := r.RenderDocument([]byte("x"), Options{Theme: "light", HighlightAssets: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(withAssets, "highlight.min.js") {
		t.Error("highlight.js script missing")
	}
	if !strings.Contains(withAssets, "github.min.css") {
		t.Error("light highlight style missing")
	}

	dark, _ := r.RenderDocument([]byte("x"), Options{Theme: "dark", HighlightAssets: true})
	if !strings.Contains(dark, "github-dark.min.css") {
		t.Error("dark highlight style missing")
	}

	plain, _ := r.RenderDocument([]byte("x"), Options{Theme: "light"})
	if strings.Contains(plain, "highlight.min.js") {
		t.Error("highlight.js included when disabled")
	}
}

func TestRenderFile_MissingFileYieldsErrorPage(t *testing.T) {
	r := New()

	doc := r.RenderFile(filepath.Join(t.TempDir(), "missing.md"), Options{Theme: "light"})
	if !strings.Contains(doc, "<h1>Error</h1>") {
		t.Errorf("expected error page, got:\n%s", doc)
	}
}

func TestRenderFile_ReadsAndRenders(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "doc.md")
	os.WriteFile(path, []byte("# On Disk"), 0644)

	doc := r.RenderFile(path, Options{Theme: "light"})
	if !strings.Contains(doc, "On Disk") {
		t.Errorf("file content not rendered:\n%s", doc)
	}
}

func TestErrorPage_EscapesMessage(t *testing.T) {
	doc := ErrorPage(`cannot read <script>alert(1)</script>`)
	if strings.Contains(doc, "<script>alert") {
		t.Error("error message not escaped")
	}
}

func TestNewTerm_MatchesTracksThemeAndWidth(t *testing.T) {
	tr, err := NewTerm("dark", 80)
	if err != nil {
		t.Fatal(err)
	}
	if !tr.Matches("dark", 80) {
		t.Error("renderer should match its own parameters")
	}
	if tr.Matches("light", 80) || tr.Matches("dark", 100) {
		t.Error("renderer matched different parameters")
	}

	out, err := tr.Render("# heading")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "heading") {
		t.Errorf("rendered output missing heading text: %q", out)
	}
}
