package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdreader/mdr/internal/theme"
)

// Preview is the rendered-Markdown pane. Scroll position is exposed
// as a fraction so the session can persist it per file.
type Preview struct {
	vp      viewport.Model
	title   string
	width   int
	height  int
	focused bool
	empty   bool
	theme   *theme.Theme
}

func NewPreview(th *theme.Theme) Preview {
	return Preview{
		vp:    viewport.New(0, 0),
		empty: true,
		theme: th,
	}
}

// SetContent replaces the pane content. title is shown in the header,
// typically the file name.
func (p *Preview) SetContent(title, content string) {
	p.title = title
	p.empty = content == ""
	p.vp.SetContent(content)
	p.vp.GotoTop()
}

// ScrollFraction reports the current position in [0, 1].
func (p Preview) ScrollFraction() float64 {
	return p.vp.ScrollPercent()
}

// SetScrollFraction restores a persisted position.
func (p *Preview) SetScrollFraction(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	total := p.vp.TotalLineCount() - p.vp.Height
	if total < 0 {
		total = 0
	}
	p.vp.SetYOffset(int(f * float64(total)))
}

func (p Preview) Init() tea.Cmd {
	return nil
}

func (p Preview) Update(msg tea.Msg) (Preview, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

func (p Preview) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	th := p.theme

	var titleStyle lipgloss.Style
	if p.focused {
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

	title := p.title
	if title == "" {
		title = "Preview"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	if p.empty {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("Select a file to preview"))
		return b.String()
	}

	b.WriteString(p.vp.View())
	return b.String()
}

func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.vp.Width = width
	p.vp.Height = height - 1 // title row
	if p.vp.Height < 0 {
		p.vp.Height = 0
	}
}

func (p *Preview) SetFocused(focused bool) {
	p.focused = focused
}
