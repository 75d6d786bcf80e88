package session

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Limits carries the policy constants the model enforces. They come
// from the config file rather than being baked in here.
type Limits struct {
	RecentMax  int
	FontMin    int
	FontMax    int
	FlushDelay time.Duration
}

// Model is the single owner of the live session state. All reads and
// writes from the UI go through it; it debounces persistence so rapid
// mutations (resize drags, scroll keys) coalesce into one save.
//
// The UI drives the model from the Bubble Tea event loop, but the
// debounce timer fires on its own goroutine, so access is guarded by a
// mutex rather than relying on single-threaded discipline.
type Model struct {
	mu     sync.Mutex
	store  *Store
	state  State
	limits Limits
	timer  *time.Timer
	logger *log.Logger
}

// NewModel loads the persisted state (degrading to defaults on any
// failure) and returns the model owning it.
func NewModel(store *Store, limits Limits, logger *log.Logger) *Model {
	if limits.RecentMax <= 0 {
		limits.RecentMax = 10
	}
	if limits.FontMin <= 0 {
		limits.FontMin = 8
	}
	if limits.FontMax < limits.FontMin {
		limits.FontMax = 72
	}
	if limits.FlushDelay <= 0 {
		limits.FlushDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = log.Default()
	}

	state, err := store.Load()
	if err != nil {
		logger.Warn("session state unreadable, using defaults", "err", err)
	}
	state.normalize(limits.FontMin, limits.FontMax)

	return &Model{
		store:  store,
		state:  state,
		limits: limits,
		logger: logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (m *Model) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// RecordRecentFile inserts path at the front of the recent-files list,
// removing any previous occurrence and enforcing the cap.
func (m *Model) RecordRecentFile(path string) {
	path = normalizePath(path)
	m.mu.Lock()
	m.state.RecentFiles = moveToFront(m.state.RecentFiles, path, m.limits.RecentMax)
	m.state.LastFile = path
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// RecordRecentFolder inserts path at the front of the recent-folders
// list, removing any previous occurrence and enforcing the cap.
func (m *Model) RecordRecentFolder(path string) {
	path = normalizePath(path)
	m.mu.Lock()
	m.state.RecentFolders = moveToFront(m.state.RecentFolders, path, m.limits.RecentMax)
	m.state.LastFolder = path
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// RecentFiles returns a copy of the recent-files list, most recent first.
func (m *Model) RecentFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.RecentFiles...)
}

// RecentFolders returns a copy of the recent-folders list.
func (m *Model) RecentFolders() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.RecentFolders...)
}

// Marker returns the mark color for a path, MarkNone when unset.
func (m *Model) Marker(path string) MarkColor {
	path = normalizePath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Markers[path]
}

// SetMarker assigns a mark color to a path. MarkNone removes the entry
// rather than storing a sentinel.
func (m *Model) SetMarker(path string, color MarkColor) {
	path = normalizePath(path)
	m.mu.Lock()
	if color == MarkNone {
		delete(m.state.Markers, path)
	} else {
		m.state.Markers[path] = color
	}
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// MoveMarker carries a path's marker to a new path (rename support).
func (m *Model) MoveMarker(oldPath, newPath string) {
	oldPath = normalizePath(oldPath)
	newPath = normalizePath(newPath)
	m.mu.Lock()
	if mark, ok := m.state.Markers[oldPath]; ok {
		delete(m.state.Markers, oldPath)
		m.state.Markers[newPath] = mark
		m.scheduleFlushLocked()
	}
	m.mu.Unlock()
}

// Expanded reports whether a directory is expanded in the tree view.
func (m *Model) Expanded(path string) bool {
	path = normalizePath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Expanded[path]
}

// SetExpanded adds or removes a directory from the expanded set.
func (m *Model) SetExpanded(path string, expanded bool) {
	path = normalizePath(path)
	m.mu.Lock()
	if expanded {
		m.state.Expanded[path] = true
	} else {
		delete(m.state.Expanded, path)
	}
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// Scroll returns the saved scroll fraction for a file, 0 when unset.
func (m *Model) Scroll(path string) float64 {
	path = normalizePath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Scroll[path]
}

// SetScroll upserts the normalized scroll offset for a file. The value
// is clamped to [0,1].
func (m *Model) SetScroll(path string, frac float64) {
	path = normalizePath(path)
	m.mu.Lock()
	m.state.Scroll[path] = clampFrac(frac)
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// Theme returns the persisted theme preference: light, dark, or auto.
func (m *Model) Theme() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Theme
}

// SetTheme stores the theme preference. Unknown values are ignored.
func (m *Model) SetTheme(theme string) {
	switch theme {
	case "light", "dark", "auto":
	default:
		return
	}
	m.mu.Lock()
	m.state.Theme = theme
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// Font returns the current font settings.
func (m *Model) Font() FontSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Font
}

// SetFont stores font settings, clamping sizes to the configured bounds.
func (m *Model) SetFont(f FontSettings) {
	f.BodySize = clampInt(f.BodySize, m.limits.FontMin, m.limits.FontMax)
	f.CodeSize = clampInt(f.CodeSize, m.limits.FontMin, m.limits.FontMax)
	m.mu.Lock()
	m.state.Font = f
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// Geometry returns the persisted window geometry.
func (m *Model) Geometry() Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Window
}

// SetGeometry stores the window geometry.
func (m *Model) SetGeometry(g Geometry) {
	m.mu.Lock()
	m.state.Window = g
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// LastFile returns the last opened file path, if any.
func (m *Model) LastFile() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LastFile
}

// LastFolder returns the last opened folder path, if any.
func (m *Model) LastFolder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LastFolder
}

// ClearLastFile forgets the last opened file (e.g. after it was deleted).
func (m *Model) ClearLastFile() {
	m.mu.Lock()
	m.state.LastFile = ""
	m.scheduleFlushLocked()
	m.mu.Unlock()
}

// Reconcile prunes marker, scroll, and expanded entries under root
// whose path is absent from the supplied live listing. Entries outside
// root decorate other folders whose files may well still exist, so
// they are left alone. It is called by the tree-refresh path, not on
// every mutation: pruning stays O(state size) and runs only when the
// filesystem was scanned anyway.
func (m *Model) Reconcile(root string, live map[string]struct{}) {
	root = normalizePath(root)
	prefix := root + string(filepath.Separator)
	stale := func(path string) bool {
		if path != root && !strings.HasPrefix(path, prefix) {
			return false
		}
		_, ok := live[path]
		return !ok
	}

	m.mu.Lock()
	changed := false
	for path := range m.state.Markers {
		if stale(path) {
			delete(m.state.Markers, path)
			changed = true
		}
	}
	for path := range m.state.Scroll {
		if stale(path) {
			delete(m.state.Scroll, path)
			changed = true
		}
	}
	for path := range m.state.Expanded {
		if stale(path) {
			delete(m.state.Expanded, path)
			changed = true
		}
	}
	if changed {
		m.scheduleFlushLocked()
	}
	m.mu.Unlock()
}

// MarkedPaths returns the marked paths in sorted order (for tests and
// debugging displays).
func (m *Model) MarkedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.state.Markers))
	for p := range m.state.Markers {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Flush writes the current state to disk synchronously, cancelling any
// pending debounced save. After Flush returns, the on-disk state
// reflects every mutation applied before the call.
func (m *Model) Flush() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	state := m.state.clone()
	m.mu.Unlock()

	return m.store.Save(state)
}

// Close performs the final synchronous flush. Save failures are logged
// and swallowed: persistence is best-effort at shutdown.
func (m *Model) Close() {
	if err := m.Flush(); err != nil {
		m.logger.Error("save session state", "err", err)
	}
}

// scheduleFlushLocked arms the debounce timer, cancelling any pending
// one so only the newest mutation's deadline counts. Callers hold m.mu.
func (m *Model) scheduleFlushLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.limits.FlushDelay, func() {
		if err := m.Flush(); err != nil {
			m.logger.Error("save session state", "err", err)
		}
	})
}

// moveToFront returns list with path at index 0, deduplicated and
// capped at max entries.
func moveToFront(list []string, path string, max int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, path)
	for _, p := range list {
		if p == path {
			continue
		}
		out = append(out, p)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// normalizePath puts paths in a canonical absolute form so marker and
// scroll lookups match regardless of how the path was spelled.
func normalizePath(path string) string {
	if path == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}
