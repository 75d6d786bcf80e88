package config

import "time"

// Config holds policy constants and startup defaults. Values the user
// changes at runtime (theme, fonts, recents) live in the session state;
// this type only decides the rules those values obey.
type Config struct {
	Theme           string   // initial theme for a fresh session: light|dark|auto
	Extensions      []string // file extensions shown in the tree
	RecentMax       int      // cap for recent files and recent folders
	FontMin         int      // lower clamp bound for font sizes
	FontMax         int      // upper clamp bound for font sizes
	BodyFontSize    int
	CodeFontSize    int
	CodeFontFamily  string
	FlushDelay      time.Duration // debounce window for state persistence
	TreeWidth       int
	ServeAddr       string // listen address for the browser preview
	HighlightAssets bool   // include highlight.js tags in exported HTML
}

func Default() Config {
	return Config{
		Theme:           "auto",
		Extensions:      []string{".md", ".markdown"},
		RecentMax:       10,
		FontMin:         8,
		FontMax:         72,
		BodyFontSize:    16,
		CodeFontSize:    14,
		CodeFontFamily:  `Consolas, Monaco, "Courier New", monospace`,
		FlushDelay:      500 * time.Millisecond,
		TreeWidth:       34,
		ServeAddr:       "127.0.0.1:0",
		HighlightAssets: true,
	}
}
