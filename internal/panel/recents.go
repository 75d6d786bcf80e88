package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mdreader/mdr/internal/theme"
)

// Recents is an overlay listing recently opened files and folders.
// Tab switches between the two lists.
type Recents struct {
	files   []string
	folders []string
	cursor  int
	width   int
	height  int
	visible bool
	onDirs  bool
	theme   *theme.Theme
}

func NewRecents(th *theme.Theme) Recents {
	return Recents{theme: th}
}

func (r *Recents) Show(files, folders []string) {
	r.visible = true
	r.files = files
	r.folders = folders
	r.cursor = 0
	r.onDirs = false
}

func (r *Recents) Hide() {
	r.visible = false
}

func (r Recents) Visible() bool {
	return r.visible
}

func (r Recents) current() []string {
	if r.onDirs {
		return r.folders
	}
	return r.files
}

func (r Recents) Update(msg tea.Msg) (Recents, tea.Cmd) {
	if !r.visible {
		return r, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			r.visible = false
			return r, func() tea.Msg { return RecentsClosedMsg{} }

		case "tab":
			r.onDirs = !r.onDirs
			r.cursor = 0

		case "j", "down":
			if r.cursor < len(r.current())-1 {
				r.cursor++
			}

		case "k", "up":
			if r.cursor > 0 {
				r.cursor--
			}

		case "enter":
			items := r.current()
			if r.cursor < len(items) {
				path := items[r.cursor]
				folder := r.onDirs
				r.visible = false
				return r, func() tea.Msg {
					return RecentSelectedMsg{Path: path, Folder: folder}
				}
			}
		}
	}

	return r, nil
}

func (r Recents) View() string {
	if !r.visible {
		return ""
	}

	th := r.theme

	width := r.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	dim := lipgloss.NewStyle().Foreground(th.Dim)

	title := "Recent Files"
	if r.onDirs {
		title = "Recent Folders"
	}

	var lines []string
	lines = append(lines, titleStyle.Render(title)+dim.Render("  (tab to switch)"))
	lines = append(lines, "")

	items := r.current()
	if len(items) == 0 {
		lines = append(lines, dim.Render("Nothing yet"))
	}
	for i, path := range items {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(th.Text)
		if i == r.cursor {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		}

		line := fmt.Sprintf("%s%s", prefix, path)
		line = ansi.Truncate(line, innerWidth, "...")
		lines = append(lines, style.Render(line))
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (r *Recents) SetSize(width, height int) {
	r.width = width
	r.height = height
}
