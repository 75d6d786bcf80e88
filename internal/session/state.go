package session

// MarkColor is a user-assigned color tag on a file path.
type MarkColor string

const (
	MarkNone  MarkColor = ""
	MarkGreen MarkColor = "green"
	MarkRed   MarkColor = "red"
)

// Geometry is the persisted window placement.
type Geometry struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Maximized bool `json:"maximized"`
}

// FontSettings holds the preview typography preferences. Empty colors
// mean "use the theme default".
type FontSettings struct {
	BodySize        int    `json:"body_size"`
	CodeSize        int    `json:"code_size"`
	CodeFamily      string `json:"code_family"`
	InlineCodeColor string `json:"inline_code_color,omitempty"`
	BlockCodeColor  string `json:"block_code_color,omitempty"`
}

// State is the full persisted session record. It round-trips as a
// single unit: every save writes every field, whichever mutator ran.
// Unknown keys in the file are ignored on load and missing keys keep
// their defaults, so older and newer files both read cleanly.
type State struct {
	Window        Geometry             `json:"window"`
	RecentFiles   []string             `json:"recent_files,omitempty"`
	RecentFolders []string             `json:"recent_folders,omitempty"`
	Markers       map[string]MarkColor `json:"markers,omitempty"`
	Expanded      map[string]bool      `json:"expanded,omitempty"`
	Scroll        map[string]float64   `json:"scroll,omitempty"`
	Theme         string               `json:"theme"`
	Font          FontSettings         `json:"font"`
	LastFile      string               `json:"last_file,omitempty"`
	LastFolder    string               `json:"last_folder,omitempty"`
}

// Default returns a fresh session state.
func Default() State {
	return State{
		Window: Geometry{Width: 120, Height: 40},
		Theme:  "auto",
		Font: FontSettings{
			BodySize:   16,
			CodeSize:   14,
			CodeFamily: `Consolas, Monaco, "Courier New", monospace`,
		},
		Markers:  make(map[string]MarkColor),
		Expanded: make(map[string]bool),
		Scroll:   make(map[string]float64),
	}
}

// normalize repairs a state loaded from an arbitrary file: nil maps are
// allocated, font sizes are clamped, scroll offsets pulled into [0,1],
// and invalid enum values fall back to defaults.
func (s *State) normalize(fontMin, fontMax int) {
	if s.Markers == nil {
		s.Markers = make(map[string]MarkColor)
	}
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	if s.Scroll == nil {
		s.Scroll = make(map[string]float64)
	}

	for path, mark := range s.Markers {
		if mark != MarkGreen && mark != MarkRed {
			delete(s.Markers, path)
		}
	}
	for path, frac := range s.Scroll {
		s.Scroll[path] = clampFrac(frac)
	}

	s.Font.BodySize = clampInt(s.Font.BodySize, fontMin, fontMax)
	s.Font.CodeSize = clampInt(s.Font.CodeSize, fontMin, fontMax)

	switch s.Theme {
	case "light", "dark", "auto":
	default:
		s.Theme = "auto"
	}
}

// clone returns a deep copy so callers can hand the state across
// goroutine boundaries (the debounced flush) without aliasing.
func (s State) clone() State {
	out := s
	out.RecentFiles = append([]string(nil), s.RecentFiles...)
	out.RecentFolders = append([]string(nil), s.RecentFolders...)
	out.Markers = make(map[string]MarkColor, len(s.Markers))
	for k, v := range s.Markers {
		out.Markers[k] = v
	}
	out.Expanded = make(map[string]bool, len(s.Expanded))
	for k, v := range s.Expanded {
		out.Expanded[k] = v
	}
	out.Scroll = make(map[string]float64, len(s.Scroll))
	for k, v := range s.Scroll {
		out.Scroll[k] = v
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFrac(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
