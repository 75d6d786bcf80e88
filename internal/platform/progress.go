package platform

import (
	"fmt"
	"io"
	"os"
)

// Progress reports long-running work to the terminal's taskbar entry
// using the ConEmu OSC 9;4 sequence. Terminals that do not understand
// it ignore the bytes.
type Progress struct {
	w io.Writer
}

func NewProgress() *Progress {
	return &Progress{w: os.Stderr}
}

// Set shows determinate progress, clamping value into [0, max].
func (p *Progress) Set(value, max int) {
	if max <= 0 {
		return
	}
	pct := value * 100 / max
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	fmt.Fprintf(p.w, "\x1b]9;4;1;%d\x1b\\", pct)
}

// Clear removes the taskbar progress indicator.
func (p *Progress) Clear() {
	fmt.Fprint(p.w, "\x1b]9;4;0;0\x1b\\")
}
