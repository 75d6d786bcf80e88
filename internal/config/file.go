package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Theme           *string  `toml:"theme"`
	Extensions      []string `toml:"extensions"`
	RecentMax       *int     `toml:"recent_max"`
	FontMin         *int     `toml:"font_min"`
	FontMax         *int     `toml:"font_max"`
	BodyFontSize    *int     `toml:"body_font_size"`
	CodeFontSize    *int     `toml:"code_font_size"`
	CodeFontFamily  *string  `toml:"code_font_family"`
	FlushDelayMS    *int     `toml:"flush_delay_ms"`
	TreeWidth       *int     `toml:"tree_width"`
	ServeAddr       *string  `toml:"serve_addr"`
	HighlightAssets *bool    `toml:"highlight_assets"`
}

// Dir returns the mdr config directory, respecting XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mdr")
}

// Path returns the full path to config.toml.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StatePath returns the full path to the persisted session state file.
func StatePath() string {
	return filepath.Join(Dir(), "state.json")
}

// LogPath returns the full path to the application log file.
func LogPath() string {
	return filepath.Join(Dir(), "mdr.log")
}

// IndexDir returns the directory holding per-folder search indexes.
func IndexDir() string {
	return filepath.Join(Dir(), "index")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if len(fc.Extensions) > 0 {
		exts := make([]string, 0, len(fc.Extensions))
		for _, e := range fc.Extensions {
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts = append(exts, strings.ToLower(e))
		}
		cfg.Extensions = exts
	}
	if fc.RecentMax != nil && *fc.RecentMax > 0 {
		cfg.RecentMax = *fc.RecentMax
	}
	if fc.FontMin != nil && *fc.FontMin > 0 {
		cfg.FontMin = *fc.FontMin
	}
	if fc.FontMax != nil && *fc.FontMax >= cfg.FontMin {
		cfg.FontMax = *fc.FontMax
	}
	if fc.BodyFontSize != nil {
		cfg.BodyFontSize = *fc.BodyFontSize
	}
	if fc.CodeFontSize != nil {
		cfg.CodeFontSize = *fc.CodeFontSize
	}
	if fc.CodeFontFamily != nil {
		cfg.CodeFontFamily = *fc.CodeFontFamily
	}
	if fc.FlushDelayMS != nil && *fc.FlushDelayMS > 0 {
		cfg.FlushDelay = time.Duration(*fc.FlushDelayMS) * time.Millisecond
	}
	if fc.TreeWidth != nil && *fc.TreeWidth > 0 {
		cfg.TreeWidth = *fc.TreeWidth
	}
	if fc.ServeAddr != nil {
		cfg.ServeAddr = *fc.ServeAddr
	}
	if fc.HighlightAssets != nil {
		cfg.HighlightAssets = *fc.HighlightAssets
	}

	return true, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
