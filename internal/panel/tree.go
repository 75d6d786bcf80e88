package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mdreader/mdr/internal/session"
	"github.com/mdreader/mdr/internal/theme"
	"github.com/mdreader/mdr/internal/tree"
)

// Tree is the file tree panel. It displays a projection built by the
// app; expansion and markers live in the session, so structural keys
// emit messages instead of mutating locally.
type Tree struct {
	root     *tree.Node
	visible  []*tree.Node
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	showHelp bool
	theme    *theme.Theme
}

func NewTree(th *theme.Theme) Tree {
	return Tree{theme: th}
}

// SetTree replaces the displayed projection, keeping the cursor on
// the same path when it survived the refresh.
func (t *Tree) SetTree(root *tree.Node) {
	var current string
	if t.cursor < len(t.visible) {
		current = t.visible[t.cursor].Path
	}

	t.root = root
	t.visible = root.Visible()

	if current != "" {
		for i, n := range t.visible {
			if n.Path == current {
				t.cursor = i
				break
			}
		}
	}
	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// SelectPath moves the cursor to path if it is visible.
func (t *Tree) SelectPath(path string) {
	for i, n := range t.visible {
		if n.Path == path {
			t.cursor = i
			t.scrollIntoView()
			return
		}
	}
}

// Selected returns the node under the cursor, or nil.
func (t Tree) Selected() *tree.Node {
	if t.cursor < len(t.visible) {
		return t.visible[t.cursor]
	}
	return nil
}

func (t Tree) Init() tea.Cmd {
	return nil
}

func (t Tree) Update(msg tea.Msg) (Tree, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// When help is shown, any key dismisses it
		if t.showHelp {
			t.showHelp = false
			return t, nil
		}

		switch msg.String() {
		case "j", "down":
			if t.cursor < len(t.visible)-1 {
				t.cursor++
				if t.cursor-t.offset >= t.height-2 {
					t.offset++
				}
			}
		case "k", "up":
			if t.cursor > 0 {
				t.cursor--
				if t.cursor < t.offset {
					t.offset = t.cursor
				}
			}
		case "enter":
			if node := t.Selected(); node != nil {
				if node.IsDir {
					return t, func() tea.Msg {
						return DirToggledMsg{Path: node.Path, Expanded: !node.Expanded}
					}
				}
				return t, func() tea.Msg {
					return FileSelectedMsg{Path: node.Path}
				}
			}
		case "G":
			if len(t.visible) == 0 {
				break
			}
			t.cursor = len(t.visible) - 1
			if t.cursor-t.offset >= t.height-2 {
				t.offset = t.cursor - t.height + 3
			}
		case "g":
			t.cursor = 0
			t.offset = 0
		case "a":
			dir := t.targetDir()
			return t, func() tea.Msg { return TreeNewFileMsg{Dir: dir} }
		case "A":
			dir := t.targetDir()
			return t, func() tea.Msg { return TreeNewFolderMsg{Dir: dir} }
		case "d":
			if node := t.Selected(); node != nil {
				return t, func() tea.Msg {
					return TreeDeleteMsg{Path: node.Path, Name: node.Name, IsDir: node.IsDir}
				}
			}
		case "r":
			if node := t.Selected(); node != nil {
				return t, func() tea.Msg {
					return TreeRenameMsg{Path: node.Path, Name: node.Name}
				}
			}
		case "o":
			if node := t.Selected(); node != nil {
				return t, func() tea.Msg {
					return TreeRevealMsg{Path: node.Path}
				}
			}
		case "m":
			if node := t.Selected(); node != nil && !node.IsDir {
				return t, func() tea.Msg {
					return TreeCycleMarkerMsg{Path: node.Path}
				}
			}
		case "?":
			t.showHelp = !t.showHelp
		}
	}

	return t, nil
}

// targetDir picks where new entries go: the directory under the
// cursor, or the parent of a selected file, or the root.
func (t Tree) targetDir() string {
	node := t.Selected()
	if node == nil {
		if t.root != nil {
			return t.root.Path
		}
		return "."
	}
	if node.IsDir {
		return node.Path
	}
	return filepath.Dir(node.Path)
}

func (t Tree) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}
	th := t.theme

	var titleStyle lipgloss.Style
	if t.focused {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true).
			Padding(0, 1)
	} else {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Dim).
			Padding(0, 1)
	}

	var b strings.Builder

	// Title row with optional ? hint
	title := titleStyle.Render("Files")
	if t.focused && !t.showHelp {
		hintStyle := lipgloss.NewStyle().Foreground(th.Dim)
		hint := hintStyle.Render("?")
		titleWidth := lipgloss.Width(title)
		hintWidth := lipgloss.Width(hint)
		gap := t.width - 2 - titleWidth - hintWidth
		if gap > 0 {
			b.WriteString(title)
			b.WriteString(strings.Repeat(" ", gap))
			b.WriteString(hint)
		} else {
			b.WriteString(title)
		}
	} else {
		b.WriteString(title)
	}
	b.WriteByte('\n')

	viewHeight := t.height - 2 // title + bottom padding
	if viewHeight < 0 {
		viewHeight = 0
	}

	helpLines := 0
	if t.showHelp {
		helpLines = 13 // help box height
		viewHeight -= helpLines
		if viewHeight < 0 {
			viewHeight = 0
		}
	}

	for i := t.offset; i < len(t.visible) && i-t.offset < viewHeight; i++ {
		b.WriteString(t.renderRow(t.visible[i], i == t.cursor))
		b.WriteByte('\n')
	}

	if t.showHelp {
		b.WriteString(t.renderHelp())
	}

	return b.String()
}

func (t Tree) renderRow(node *tree.Node, selected bool) string {
	th := t.theme

	depth := 0
	if t.root != nil {
		depth = t.root.Depth(node.Path)
	}
	indent := strings.Repeat("  ", depth)

	icon := "  "
	if node.IsDir {
		if node.Expanded {
			icon = "▾ "
		} else {
			icon = "▸ "
		}
	}

	name := node.Name
	if node.Unreadable {
		name += " (unreadable)"
	}

	marker := ""
	switch node.Marker {
	case session.MarkGreen:
		marker = lipgloss.NewStyle().Foreground(th.MarkerGreen).Render("● ")
	case session.MarkRed:
		marker = lipgloss.NewStyle().Foreground(th.MarkerRed).Render("● ")
	}

	line := fmt.Sprintf("%s%s%s%s", indent, icon, marker, name)

	rowWidth := t.width - 2
	if rowWidth < 0 {
		rowWidth = 0
	}
	plainWidth := lipgloss.Width(line)
	if plainWidth > rowWidth {
		line = ansi.Truncate(line, rowWidth, "...")
	} else if plainWidth < rowWidth {
		line += strings.Repeat(" ", rowWidth-plainWidth)
	}

	if selected && t.focused {
		style := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		return style.Render(line)
	}
	if node.Unreadable {
		return lipgloss.NewStyle().Foreground(th.Error).Render(line)
	}
	return line
}

func (t Tree) renderHelp() string {
	th := t.theme
	dim := lipgloss.NewStyle().Foreground(th.Dim)
	key := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Width(t.width - 6)

	lines := []struct{ k, v string }{
		{"j/k", "Navigate"},
		{"enter", "Open / Toggle dir"},
		{"a/A", "New file / folder"},
		{"d", "Delete"},
		{"r", "Rename"},
		{"m", "Cycle marker"},
		{"o", "Reveal in files"},
		{"g/G", "Top / Bottom"},
		{"?", "Toggle help"},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-5s", l.k)), dim.Render(l.v)))
	}

	return border.Render(strings.TrimRight(sb.String(), "\n"))
}

func (t *Tree) scrollIntoView() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.height > 2 && t.cursor-t.offset >= t.height-2 {
		t.offset = t.cursor - t.height + 3
	}
}

func (t *Tree) SetSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *Tree) SetFocused(focused bool) {
	t.focused = focused
}

func (t Tree) ShowingHelp() bool {
	return t.showHelp
}
