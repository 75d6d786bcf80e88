package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mdreader/mdr/internal/config"
	"github.com/mdreader/mdr/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))

	root := filepath.Join(tmp, "notes")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("# A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger := log.New(io.Discard)
	store := session.NewStore(config.StatePath())
	sess := session.NewModel(store, session.Limits{}, logger)
	return New(config.Default(), sess, root, "", "", logger)
}

func TestApp_RefreshTreeKeepsOtherFolderDecoration(t *testing.T) {
	a := newTestApp(t)

	otherDir := t.TempDir()
	otherFile := filepath.Join(otherDir, "keep.md")
	if err := os.WriteFile(otherFile, []byte("# keep\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a.sess.SetMarker(otherFile, session.MarkGreen)
	a.sess.SetScroll(otherFile, 0.3)
	a.sess.SetExpanded(otherDir, true)

	// Refreshing the open folder reconciles only its own paths; files
	// that still exist elsewhere keep their decoration.
	a.refreshTree()

	if got := a.sess.Marker(otherFile); got != session.MarkGreen {
		t.Errorf("marker in another folder pruned: got %q", got)
	}
	if got := a.sess.Scroll(otherFile); got != 0.3 {
		t.Errorf("scroll in another folder pruned: got %v", got)
	}
	if !a.sess.Expanded(otherDir) {
		t.Error("expanded entry in another folder pruned")
	}
}

func TestApp_RenderOptionsSafeDuringThemeCycle(t *testing.T) {
	a := newTestApp(t)

	// renderOptions runs on the preview server goroutine while the UI
	// loop cycles the theme.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			opts := a.renderOptions("a.md")
			if opts.Theme != "light" && opts.Theme != "dark" {
				t.Errorf("unresolved theme %q", opts.Theme)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			a.cycleTheme()
		}
	}()
	wg.Wait()
}

func TestApp_WatcherStartsWithoutIndex(t *testing.T) {
	a := newTestApp(t)
	if a.db != nil {
		a.db.Close()
	}
	a.db = nil
	a.indexer = nil

	a.Init()
	if a.watcher == nil {
		t.Fatal("watcher not started when the index is unavailable")
	}
	a.Close()
}

func TestApp_ResizeKeepsWindowPlacement(t *testing.T) {
	a := newTestApp(t)
	a.sess.SetGeometry(session.Geometry{X: 5, Y: 7, Width: 80, Height: 24, Maximized: true})

	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	geo := a.sess.Geometry()
	if geo.Width != 100 || geo.Height != 40 {
		t.Errorf("size not updated: %+v", geo)
	}
	if geo.X != 5 || geo.Y != 7 || !geo.Maximized {
		t.Errorf("placement fields lost on resize: %+v", geo)
	}
}
