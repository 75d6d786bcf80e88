package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// TermRenderer converts Markdown to ANSI text for the preview pane.
// It is rebuilt whenever the theme or wrap width changes.
type TermRenderer struct {
	r     *glamour.TermRenderer
	theme string
	width int
}

// NewTerm builds a terminal renderer for the resolved theme ("light"
// or "dark") wrapping at width columns.
func NewTerm(theme string, width int) (*TermRenderer, error) {
	style := "light"
	if theme == "dark" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("build term renderer: %w", err)
	}
	return &TermRenderer{r: r, theme: theme, width: width}, nil
}

// Matches reports whether the renderer was built for this theme and
// width, so callers can skip a rebuild.
func (t *TermRenderer) Matches(theme string, width int) bool {
	return t != nil && t.theme == theme && t.width == width
}

// Render converts Markdown source to styled terminal output.
func (t *TermRenderer) Render(src string) (string, error) {
	out, err := t.r.Render(src)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
