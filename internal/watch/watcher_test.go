package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []event
}

type event struct {
	path    string
	removed bool
}

func (r *recorder) record(path string, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{path, removed})
}

func (r *recorder) wait(t *testing.T, match func(event) bool) event {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		for _, e := range r.events {
			if match(e) {
				r.mu.Unlock()
				return e
			}
		}
		r.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no matching event before deadline")
	return event{}
}

func (r *recorder) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.path == path {
			n++
		}
	}
	return n
}

func startWatcher(t *testing.T, root string, rec *recorder) *Watcher {
	t.Helper()
	w, err := New(root, []string{".md"}, rec.record, nil)
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	t.Cleanup(func() { w.Close() })
	// fsnotify needs a beat to arm the watches.
	time.Sleep(50 * time.Millisecond)
	return w
}

func TestWatcher_ReportsCreate(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	startWatcher(t, root, rec)

	path := filepath.Join(root, "new.md")
	os.WriteFile(path, []byte("x"), 0644)

	e := rec.wait(t, func(e event) bool { return e.path == path })
	if e.removed {
		t.Error("create reported as removal")
	}
}

func TestWatcher_ReportsRemove(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.md")
	os.WriteFile(path, []byte("x"), 0644)

	rec := &recorder{}
	startWatcher(t, root, rec)

	os.Remove(path)

	rec.wait(t, func(e event) bool { return e.path == path && e.removed })
}

func TestWatcher_IgnoresUnmatchedExtensions(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	startWatcher(t, root, rec)

	ignored := filepath.Join(root, "image.png")
	watched := filepath.Join(root, "doc.md")
	os.WriteFile(ignored, []byte("x"), 0644)
	os.WriteFile(watched, []byte("x"), 0644)

	rec.wait(t, func(e event) bool { return e.path == watched })
	if rec.count(ignored) != 0 {
		t.Error("non-markdown file reported")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "busy.md")
	os.WriteFile(path, []byte("0"), 0644)

	rec := &recorder{}
	startWatcher(t, root, rec)

	for i := 0; i < 10; i++ {
		os.WriteFile(path, []byte{byte('0' + i)}, 0644)
		time.Sleep(5 * time.Millisecond)
	}

	rec.wait(t, func(e event) bool { return e.path == path })
	time.Sleep(2 * debounceDelay)

	if n := rec.count(path); n >= 10 {
		t.Errorf("burst of 10 writes produced %d callbacks", n)
	}
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	startWatcher(t, root, rec)

	sub := filepath.Join(root, "sub")
	os.MkdirAll(sub, 0755)
	rec.wait(t, func(e event) bool { return e.path == sub })

	inner := filepath.Join(sub, "inner.md")
	// Give the watcher a beat to arm the new directory.
	time.Sleep(50 * time.Millisecond)
	os.WriteFile(inner, []byte("x"), 0644)

	rec.wait(t, func(e event) bool { return e.path == inner })
}

func TestWatcher_CloseStopsCallbacks(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	w, err := New(root, []string{".md"}, rec.record, nil)
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	time.Sleep(50 * time.Millisecond)

	path := filepath.Join(root, "late.md")
	os.WriteFile(path, []byte("x"), 0644)
	w.Close()

	time.Sleep(2 * debounceDelay)
	if n := rec.count(path); n != 0 {
		t.Errorf("callback fired %d times after Close", n)
	}
}
