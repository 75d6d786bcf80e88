package app

import "testing"

func TestComputeLayout_SplitsWidth(t *testing.T) {
	l := ComputeLayout(120, 40, true, 34)

	if l.TreeWidth != 34 {
		t.Errorf("tree width = %d, want configured 34", l.TreeWidth)
	}
	if l.Height != 39 {
		t.Errorf("height = %d, want total minus status row", l.Height)
	}
	// The border column is shared between the panes.
	if got := l.TreeWidth + l.PreviewWidth; got != 121 {
		t.Errorf("tree + preview = %d, want width + 1 overlap", got)
	}
}

func TestComputeLayout_CapsTreeAtHalf(t *testing.T) {
	l := ComputeLayout(40, 20, true, 34)

	if l.TreeWidth != 20 {
		t.Errorf("tree width = %d, want half of total", l.TreeWidth)
	}
	if l.PreviewWidth < 1 {
		t.Errorf("preview width = %d, want at least 1", l.PreviewWidth)
	}
}

func TestComputeLayout_NoTree(t *testing.T) {
	l := ComputeLayout(100, 30, false, 34)

	if l.TreeWidth != 0 {
		t.Errorf("tree width = %d, want 0 when hidden", l.TreeWidth)
	}
	if l.PreviewWidth != 100 {
		t.Errorf("preview width = %d, want full width", l.PreviewWidth)
	}
}

func TestComputeLayout_ClampsDegenerateSizes(t *testing.T) {
	l := ComputeLayout(0, 0, true, 34)

	if l.PreviewWidth < 1 {
		t.Errorf("preview width = %d, want at least 1", l.PreviewWidth)
	}
	if l.Height < 1 {
		t.Errorf("height = %d, want at least 1", l.Height)
	}
}
