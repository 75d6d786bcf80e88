// Package watch monitors the opened folder for filesystem changes so
// the tree and preview stay current.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 200 * time.Millisecond

// Watcher monitors a folder tree recursively. Bursts of events on the
// same path (editors write-then-rename, sync tools chunk writes) are
// collapsed into one callback per path.
type Watcher struct {
	fw       *fsnotify.Watcher
	root     string
	exts     []string
	onChange func(path string, removed bool)
	onError  func(error)

	mu       sync.Mutex
	debounce map[string]*time.Timer
	closed   bool
}

// New builds a watcher over root. onChange fires after the debounce
// window for every matching file that changed; removed is true when
// the path was deleted or renamed away. onError fires once if the
// event stream dies.
func New(root string, exts []string, onChange func(path string, removed bool), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		root:     root,
		exts:     exts,
		onChange: onChange,
		onError:  onError,
		debounce: make(map[string]*time.Timer),
	}

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			fw.Add(path)
		}
		return nil
	})

	return w, nil
}

// Start consumes the event stream. Blocks until Close is called or
// the stream dies, so run it in a goroutine.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.fatal(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !w.matches(path) {
		// Directories created under the root need their own watch.
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
				w.fw.Add(path)
				w.fire(path, false)
			}
		}
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			// Removed directories still need a tree refresh.
			if filepath.Ext(path) == "" {
				w.fire(path, true)
			}
		}
		return
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	w.fire(path, removed)
}

// fire schedules the debounced callback for path, replacing any
// pending one.
func (w *Watcher) fire(path string, removed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()

		if closed {
			return
		}
		if w.onChange != nil {
			w.onChange(path, removed)
		}
	})
}

func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func (w *Watcher) fatal(err error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	onError := w.onError
	w.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

// Close stops the watcher and cancels pending callbacks.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()
	return w.fw.Close()
}
