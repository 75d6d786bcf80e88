// Package app wires the panels, session, renderer, index and watcher
// into the Bubble Tea program.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/mdreader/mdr/internal/config"
	"github.com/mdreader/mdr/internal/index"
	"github.com/mdreader/mdr/internal/panel"
	"github.com/mdreader/mdr/internal/platform"
	"github.com/mdreader/mdr/internal/render"
	"github.com/mdreader/mdr/internal/serve"
	"github.com/mdreader/mdr/internal/session"
	"github.com/mdreader/mdr/internal/theme"
	"github.com/mdreader/mdr/internal/tree"
	"github.com/mdreader/mdr/internal/watch"
)

type focusedPanel int

const (
	focusPreview focusedPanel = iota
	focusTree
)

type promptAction struct {
	kind  string // "create-file", "create-folder", "rename", "delete"
	path  string // target path for rename/delete
	dir   string // destination directory for create
	isDir bool
}

type App struct {
	cfg     config.Config
	logger  *log.Logger
	program *tea.Program

	tree    panel.Tree
	preview panel.Preview
	status  panel.Status
	finder  panel.Finder
	prompt  panel.Prompt
	recents panel.Recents

	sess     *session.Model
	root     string
	db       *index.DB
	indexer  *index.Indexer
	watcher  *watch.Watcher
	server   *serve.Server
	progress *platform.Progress

	html *render.Renderer
	term *render.TermRenderer

	palette theme.Theme

	width   int
	height  int
	focused focusedPanel

	pendingPrompt promptAction

	// mu guards currentFile and themeName, which the preview HTTP
	// server reads from its own goroutine.
	mu          sync.Mutex
	currentFile string
	themeName   string // resolved "light" or "dark"

	initialFile string
	startupErr  string
}

// New builds the app over an opened folder. initialFile, when set, is
// opened once the program starts; startupErr is shown in the status
// bar (e.g. the command-line path did not exist).
func New(cfg config.Config, sess *session.Model, root, initialFile, startupErr string, logger *log.Logger) *App {
	resolved := platform.Resolve(sess.Theme())
	palette := theme.ForName(resolved)

	a := &App{
		cfg:         cfg,
		logger:      logger,
		sess:        sess,
		root:        root,
		palette:     palette,
		themeName:   resolved,
		html:        render.New(),
		progress:    platform.NewProgress(),
		focused:     focusTree,
		initialFile: initialFile,
		startupErr:  startupErr,
	}
	a.tree = panel.NewTree(&a.palette)
	a.preview = panel.NewPreview(&a.palette)
	a.status = panel.NewStatus(root)
	a.finder = panel.NewFinder(&a.palette)
	a.prompt = panel.NewPrompt()
	a.recents = panel.NewRecents(&a.palette)

	a.tree.SetFocused(true)
	a.status.SetTheme(sess.Theme())
	if startupErr != "" {
		a.status.SetError(startupErr)
	}

	sess.RecordRecentFolder(root)
	a.openIndex()
	a.refreshTree()

	return a
}

// openIndex opens the per-folder search database. Failure leaves the
// finder disabled but the app usable.
func (a *App) openIndex() {
	dir := config.IndexDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		a.status.SetError(fmt.Sprintf("index dir: %v", err))
		return
	}

	dbPath := filepath.Join(dir, indexFileName(a.root))
	db, err := index.Open(dbPath)
	if err != nil {
		a.status.SetError(fmt.Sprintf("index open failed: %v", err))
		return
	}
	a.db = db
	a.indexer = index.NewIndexer(db, a.root, a.cfg.Extensions)
	a.finder.SetSearchFunc(a.searchFiles)
}

func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	// The watcher runs regardless of the index: tree refresh and
	// preview reload must not depend on SQLite being available.
	cmds = append(cmds, a.startWatcher())
	if a.indexer != nil {
		cmds = append(cmds, a.initIndex())
	}
	if a.initialFile != "" {
		path := a.initialFile
		cmds = append(cmds, func() tea.Msg { return openInitialFileMsg{path: path} })
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}

		// Overlays take priority when visible.
		if a.prompt.Visible() {
			var cmd tea.Cmd
			a.prompt, cmd = a.prompt.Update(msg)
			return a, cmd
		}
		if a.finder.Visible() {
			var cmd tea.Cmd
			a.finder, cmd = a.finder.Update(msg)
			return a, cmd
		}
		if a.recents.Visible() {
			var cmd tea.Cmd
			a.recents, cmd = a.recents.Update(msg)
			return a, cmd
		}

		switch msg.String() {
		case "q":
			// The tree's help overlay swallows the next key.
			if a.focused == focusTree && a.tree.ShowingHelp() {
				break
			}
			a.Close()
			return a, tea.Quit
		case "ctrl+h":
			a.setFocus(focusTree)
			return a, nil
		case "ctrl+l":
			a.setFocus(focusPreview)
			return a, nil
		case "esc":
			if a.focused == focusTree && a.tree.ShowingHelp() {
				break // let the tree dismiss its help
			}
			a.setFocus(focusPreview)
			return a, nil
		case "/":
			if a.db != nil {
				a.finder.Show()
			} else {
				a.status.SetError("search index unavailable")
			}
			return a, nil
		case "R":
			a.recents.Show(a.sess.RecentFiles(), a.sess.RecentFolders())
			return a, nil
		case "t":
			if a.focused == focusTree && a.tree.ShowingHelp() {
				break
			}
			a.cycleTheme()
			return a, nil
		case "E":
			return a, a.exportHTML()
		case "b":
			if a.focused == focusTree && a.tree.ShowingHelp() {
				break
			}
			return a, a.openBrowserPreview()
		}

	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes;
		// ignore them.
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		geo := a.sess.Geometry()
		geo.Width = msg.Width
		geo.Height = msg.Height
		a.sess.SetGeometry(geo)

		overlayW := int(float64(msg.Width) * 0.6)
		if overlayW > 80 {
			overlayW = 80
		}
		if overlayW < 40 {
			overlayW = 40
		}
		a.finder.SetSize(overlayW, msg.Height)
		a.recents.SetSize(overlayW, msg.Height)
		a.prompt.SetSize(overlayW, msg.Height)

		a.updateLayout()
		a.rerenderPreview(true)
		return a, tea.ClearScreen

	case openInitialFileMsg:
		a.selectFile(msg.path)
		return a, nil

	case panel.FileSelectedMsg:
		a.selectFile(msg.Path)
		a.setFocus(focusPreview)
		return a, nil

	case panel.DirToggledMsg:
		a.sess.SetExpanded(msg.Path, msg.Expanded)
		a.refreshTree()
		return a, nil

	case panel.TreeCycleMarkerMsg:
		a.cycleMarker(msg.Path)
		a.refreshTree()
		return a, nil

	case panel.TreeRevealMsg:
		if err := platform.Reveal(msg.Path); err != nil {
			a.status.SetError(err.Error())
		}
		return a, nil

	case panel.TreeNewFileMsg:
		a.pendingPrompt = promptAction{kind: "create-file", dir: msg.Dir}
		a.prompt.Show("New file", "notes.md")
		return a, nil

	case panel.TreeNewFolderMsg:
		a.pendingPrompt = promptAction{kind: "create-folder", dir: msg.Dir}
		a.prompt.Show("New folder", "drafts")
		return a, nil

	case panel.TreeRenameMsg:
		a.pendingPrompt = promptAction{kind: "rename", path: msg.Path}
		a.prompt.Show("Rename", msg.Name)
		return a, nil

	case panel.TreeDeleteMsg:
		a.pendingPrompt = promptAction{kind: "delete", path: msg.Path, isDir: msg.IsDir}
		a.prompt.ShowConfirm("Delete " + msg.Name + "?")
		return a, nil

	case panel.PromptResultMsg:
		return a, a.handlePromptResult(msg.Value)

	case panel.PromptConfirmMsg:
		return a, a.handlePromptConfirm(msg.OK)

	case panel.PromptCancelledMsg:
		a.pendingPrompt = promptAction{}
		return a, nil

	case panel.FinderResultMsg:
		a.selectFile(filepath.Join(a.root, msg.Path))
		a.setFocus(focusPreview)
		return a, nil

	case panel.FinderClosedMsg:
		return a, nil

	case panel.RecentSelectedMsg:
		if msg.Folder {
			return a, a.openFolder(msg.Path)
		}
		a.selectFile(msg.Path)
		a.setFocus(focusPreview)
		return a, nil

	case panel.RecentsClosedMsg:
		return a, nil

	case fileChangedMsg:
		return a, a.handleFileChanged(msg)

	case indexProgressMsg:
		if msg.done < msg.total {
			a.status.SetProgress(fmt.Sprintf("indexing %d/%d", msg.done, msg.total))
			a.progress.Set(msg.done, msg.total)
		} else {
			a.status.SetProgress("")
			a.progress.Clear()
		}
		return a, nil

	case indexInitDoneMsg:
		a.status.SetProgress("")
		a.progress.Clear()
		if msg.err != nil {
			a.status.SetError(fmt.Sprintf("indexing failed: %v", msg.err))
		}
		return a, nil

	case fatalErrorMsg:
		a.Close()
		return a, tea.Batch(tea.Printf("fatal: %v\n", msg.err), tea.Quit)
	}

	// Route key events based on focus
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); ok {
		switch a.focused {
		case focusTree:
			a.tree, cmd = a.tree.Update(msg)
		default:
			a.preview, cmd = a.preview.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := 50, 15
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		style := lipgloss.NewStyle().
			Foreground(a.palette.Text).
			Padding(1, 2)
		box := style.Render(msg)

		fillLines := a.height
		if fillLines < 1 {
			fillLines = 1
		}
		base := strings.Repeat("\n", fillLines)
		return overlayCenter(base, box, a.width, a.height)
	}

	layout := ComputeLayout(a.width, a.height, true, a.cfg.TreeWidth)

	tw := layout.TreeWidth - 1
	if tw < 0 {
		tw = 0
	}
	treeStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(a.palette.Border).
		Width(tw).
		Height(layout.Height)

	previewStyle := lipgloss.NewStyle().
		Width(layout.PreviewWidth).
		Height(layout.Height)

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Render(a.tree.View()),
		previewStyle.Render(a.preview.View()),
	)

	result := main + "\n" + a.status.View()

	if a.finder.Visible() {
		if v := a.finder.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}
	if a.recents.Visible() {
		if v := a.recents.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}
	if a.prompt.Visible() {
		if v := a.prompt.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}

	return result
}

// Close flushes the session and tears down background subsystems.
func (a *App) Close() {
	a.saveScroll()
	a.sess.Close()

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Error("stop watcher", "err", err)
		}
		a.watcher = nil
	}
	if a.server != nil {
		if err := a.server.Close(); err != nil {
			a.logger.Error("stop preview server", "err", err)
		}
		a.server = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("close index", "err", err)
		}
		a.db = nil
	}
	a.progress.Clear()
}

// selectFile opens a file in the preview, persisting the previous
// file's scroll position first.
func (a *App) selectFile(path string) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		a.status.SetError(fmt.Sprintf("cannot open %s", path))
		return
	}

	a.saveScroll()

	a.mu.Lock()
	a.currentFile = path
	a.mu.Unlock()

	a.rerenderPreview(false)
	a.preview.SetScrollFraction(a.sess.Scroll(path))
	a.sess.RecordRecentFile(path)

	rel, err := filepath.Rel(a.root, path)
	if err != nil {
		rel = path
	}
	a.status.ClearError()
	a.status.SetFile(rel)
	a.tree.SelectPath(path)
}

// saveScroll persists the current file's scroll fraction.
func (a *App) saveScroll() {
	a.mu.Lock()
	current := a.currentFile
	a.mu.Unlock()
	if current != "" {
		a.sess.SetScroll(current, a.preview.ScrollFraction())
	}
}

// rerenderPreview rebuilds the terminal renderer when the theme or
// width changed and re-renders the current file. keepScroll restores
// the current position, for resizes and theme switches.
func (a *App) rerenderPreview(keepScroll bool) {
	a.mu.Lock()
	current := a.currentFile
	themeName := a.themeName
	a.mu.Unlock()
	if current == "" {
		return
	}

	layout := ComputeLayout(a.width, a.height, true, a.cfg.TreeWidth)
	wrap := layout.PreviewWidth - 2
	if wrap < 20 {
		wrap = 20
	}

	if !a.term.Matches(themeName, wrap) {
		term, err := render.NewTerm(themeName, wrap)
		if err != nil {
			a.status.SetError(err.Error())
			return
		}
		a.term = term
	}

	src, err := os.ReadFile(current)
	if err != nil {
		a.status.SetError(fmt.Sprintf("cannot read %s", current))
		return
	}

	frac := a.preview.ScrollFraction()
	out, err := a.term.Render(string(src))
	if err != nil {
		a.status.SetError(err.Error())
		return
	}
	a.preview.SetContent(filepath.Base(current), out)
	if keepScroll {
		a.preview.SetScrollFraction(frac)
	}
}

// refreshTree re-projects the folder and prunes session entries for
// paths that no longer exist.
func (a *App) refreshTree() {
	node, err := tree.Project(a.root, a.cfg.Extensions, a.sess)
	if err != nil {
		a.status.SetError(err.Error())
		return
	}
	a.sess.Reconcile(a.root, node.Paths())
	a.tree.SetTree(node)
}

// cycleMarker steps a file's marker: none, green, red, none.
func (a *App) cycleMarker(path string) {
	switch a.sess.Marker(path) {
	case session.MarkNone:
		a.sess.SetMarker(path, session.MarkGreen)
	case session.MarkGreen:
		a.sess.SetMarker(path, session.MarkRed)
	default:
		a.sess.SetMarker(path, session.MarkNone)
	}
}

// cycleTheme steps the preference auto, light, dark and re-renders.
func (a *App) cycleTheme() {
	var next string
	switch a.sess.Theme() {
	case "auto":
		next = "light"
	case "light":
		next = "dark"
	default:
		next = "auto"
	}
	a.sess.SetTheme(next)
	a.applyTheme()
}

// applyTheme resolves the preference and swaps the palette in place
// so every panel sees it on the next View.
func (a *App) applyTheme() {
	resolved := platform.Resolve(a.sess.Theme())
	a.mu.Lock()
	a.themeName = resolved
	a.mu.Unlock()
	a.palette = theme.ForName(resolved)
	a.status.SetTheme(a.sess.Theme())
	a.rerenderPreview(true)
}

// exportHTML writes a standalone HTML document next to the current
// file.
func (a *App) exportHTML() tea.Cmd {
	a.mu.Lock()
	current := a.currentFile
	a.mu.Unlock()
	if current == "" {
		a.status.SetError("no file selected")
		return nil
	}

	src, err := os.ReadFile(current)
	if err != nil {
		a.status.SetError(fmt.Sprintf("cannot read %s", current))
		return nil
	}

	doc, err := a.html.RenderDocument(src, a.renderOptions(filepath.Base(current)))
	if err != nil {
		a.status.SetError(err.Error())
		return nil
	}

	outPath := strings.TrimSuffix(current, filepath.Ext(current)) + ".html"
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		a.status.SetError(err.Error())
		return nil
	}

	a.status.ClearError()
	a.status.SetProgress("exported " + filepath.Base(outPath))
	return nil
}

// openBrowserPreview starts the preview server on first use and opens
// the default browser on it.
func (a *App) openBrowserPreview() tea.Cmd {
	if a.server == nil {
		srv, err := serve.Start(a.cfg.ServeAddr, a.previewHTML)
		if err != nil {
			a.status.SetError(err.Error())
			return nil
		}
		a.server = srv
	}
	if err := platform.OpenBrowser(a.server.URL()); err != nil {
		a.status.SetError(err.Error())
	}
	return nil
}

// previewHTML renders the current selection for the HTTP server. It
// runs on the server goroutine.
func (a *App) previewHTML() string {
	a.mu.Lock()
	current := a.currentFile
	a.mu.Unlock()
	if current == "" {
		return render.ErrorPage("no file selected")
	}
	return a.html.RenderFile(current, a.renderOptions(filepath.Base(current)))
}

func (a *App) renderOptions(title string) render.Options {
	a.mu.Lock()
	themeName := a.themeName
	a.mu.Unlock()
	font := a.sess.Font()
	return render.Options{
		Theme:           themeName,
		Title:           title,
		BodyFontSize:    font.BodySize,
		CodeFontSize:    font.CodeSize,
		CodeFontFamily:  font.CodeFamily,
		InlineCodeColor: font.InlineCodeColor,
		BlockCodeColor:  font.BlockCodeColor,
		HighlightAssets: a.cfg.HighlightAssets,
	}
}

// handlePromptResult dispatches a confirmed prompt value.
func (a *App) handlePromptResult(value string) tea.Cmd {
	action := a.pendingPrompt
	a.pendingPrompt = promptAction{}

	switch action.kind {
	case "create-file":
		path, err := tree.CreateFile(action.dir, value, a.cfg.Extensions)
		if err != nil {
			a.status.SetError(err.Error())
			return nil
		}
		a.sess.SetExpanded(action.dir, true)
		a.refreshTree()
		a.selectFile(path)
		return a.reindexFile(path)

	case "create-folder":
		if _, err := tree.CreateDir(action.dir, value); err != nil {
			a.status.SetError(err.Error())
			return nil
		}
		a.sess.SetExpanded(action.dir, true)
		a.refreshTree()

	case "rename":
		newPath, err := tree.Rename(action.path, value)
		if err != nil {
			a.status.SetError(err.Error())
			return nil
		}
		a.sess.MoveMarker(action.path, newPath)
		if frac := a.sess.Scroll(action.path); frac > 0 {
			a.sess.SetScroll(newPath, frac)
		}

		a.mu.Lock()
		wasCurrent := a.currentFile == action.path
		a.mu.Unlock()

		a.refreshTree()
		if wasCurrent {
			a.selectFile(newPath)
		}
		var cmds []tea.Cmd
		if c := a.removeFromIndex(action.path); c != nil {
			cmds = append(cmds, c)
		}
		if c := a.reindexFile(newPath); c != nil {
			cmds = append(cmds, c)
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// handlePromptConfirm completes a pending delete.
func (a *App) handlePromptConfirm(ok bool) tea.Cmd {
	action := a.pendingPrompt
	a.pendingPrompt = promptAction{}
	if !ok || action.kind != "delete" {
		return nil
	}

	if err := tree.Delete(action.path, action.isDir); err != nil {
		a.status.SetError(err.Error())
		return nil
	}

	a.mu.Lock()
	wasCurrent := a.currentFile == action.path ||
		(action.isDir && strings.HasPrefix(a.currentFile, action.path+string(filepath.Separator)))
	if wasCurrent {
		a.currentFile = ""
	}
	a.mu.Unlock()

	if wasCurrent {
		a.preview.SetContent("", "")
		a.status.SetFile("")
		a.sess.ClearLastFile()
	}

	a.refreshTree()
	if !action.isDir {
		return a.removeFromIndex(action.path)
	}
	return nil
}

// handleFileChanged reacts to a watcher event: refresh the tree, keep
// the index current, and re-render the preview when the open file
// changed under us.
func (a *App) handleFileChanged(msg fileChangedMsg) tea.Cmd {
	a.refreshTree()

	a.mu.Lock()
	current := a.currentFile
	a.mu.Unlock()

	if msg.removed {
		if current == msg.path {
			a.mu.Lock()
			a.currentFile = ""
			a.mu.Unlock()
			a.preview.SetContent("", "")
			a.status.SetFile("")
			a.status.SetError(filepath.Base(msg.path) + " was removed")
			a.sess.ClearLastFile()
		}
		return a.removeFromIndex(msg.path)
	}

	if current == msg.path {
		a.rerenderPreview(true)
	}
	return a.reindexFile(msg.path)
}

// startWatcher begins watching the opened folder.
func (a *App) startWatcher() tea.Cmd {
	w, err := watch.New(a.root, a.cfg.Extensions,
		func(path string, removed bool) {
			if a.program != nil {
				a.program.Send(fileChangedMsg{path: path, removed: removed})
			}
		},
		func(err error) {
			if a.program != nil {
				a.program.Send(fatalErrorMsg{err: err})
			}
		})
	if err != nil {
		a.status.SetError(fmt.Sprintf("watcher init failed: %v", err))
		return nil
	}
	a.watcher = w
	go w.Start()
	return nil
}

// openFolder switches the app to a different root folder.
func (a *App) openFolder(path string) tea.Cmd {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		a.status.SetError(fmt.Sprintf("cannot open folder %s", path))
		return nil
	}

	a.saveScroll()

	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.db != nil {
		a.db.Close()
		a.db = nil
		a.indexer = nil
	}

	a.mu.Lock()
	a.currentFile = ""
	a.mu.Unlock()
	a.preview.SetContent("", "")

	a.root = path
	a.sess.RecordRecentFolder(path)
	a.status = panel.NewStatus(path)
	a.status.SetTheme(a.sess.Theme())
	a.status.SetWidth(a.width)

	a.openIndex()
	a.refreshTree()
	a.setFocus(focusTree)

	cmds := []tea.Cmd{a.startWatcher()}
	if a.indexer != nil {
		cmds = append(cmds, a.initIndex())
	}
	return tea.Batch(cmds...)
}

func (a *App) updateLayout() {
	layout := ComputeLayout(a.width, a.height, true, a.cfg.TreeWidth)
	a.tree.SetSize(layout.TreeWidth, layout.Height)
	a.preview.SetSize(layout.PreviewWidth, layout.Height)
	a.status.SetWidth(a.width)
}

func (a *App) setFocus(target focusedPanel) {
	a.tree.SetFocused(target == focusTree)
	a.preview.SetFocused(target == focusPreview)
	a.focused = target
}

// indexFileName derives a stable per-folder database name.
func indexFileName(root string) string {
	base := filepath.Base(root)
	var clean strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			clean.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s-%x.db", clean.String(), fnvHash(root))
}

func fnvHash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		w := lipgloss.Width(line)
		if w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := (height - len(overlayLines)) / 2
	startCol := (width - overlayWidth) / 2
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}

	padToCol := func(s string, col int) string {
		// Pad with spaces based on *visible* width (handles ANSI strings safely).
		for lipgloss.Width(s) < col {
			s += " "
		}
		return s
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		baseLine := baseLines[row]
		baseLine = padToCol(baseLine, startCol)

		// Overlay by columns without breaking ANSI sequences.
		// Keep the left part of the base line, replace the middle with
		// overlay, and keep the right tail of the base line.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)

		line := left + overlayLine + right
		// Ensure line doesn't overflow terminal width.
		baseLines[row] = ansi.Truncate(line, width, "")
	}

	return strings.Join(baseLines, "\n")
}
