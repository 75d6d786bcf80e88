package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the status bar at the bottom: current theme, open file,
// transient errors and indexing progress.
type Status struct {
	width    int
	folder   string
	file     string
	theme    string
	progress string
	errMsg   string
}

func NewStatus(folder string) Status {
	return Status{
		folder: folder,
	}
}

func (s *Status) SetFile(file string) {
	s.file = file
}

func (s *Status) SetTheme(name string) {
	s.theme = name
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetProgress(label string) {
	s.progress = label
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	bgStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("236"))

	themeStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("212")).
		Foreground(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1)

	fileStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)

	mode := themeStyle.Render(strings.ToUpper(s.theme))

	var fileSection string
	if s.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1)
		fileSection = errStyle.Render(s.errMsg)
	} else {
		file := s.file
		if file == "" {
			file = s.folder
		}
		fileSection = fileStyle.Render(file)
	}

	left := fmt.Sprintf("%s %s", mode, fileSection)

	right := ""
	if s.progress != "" {
		progStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
		right = progStyle.Render(s.progress)
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
