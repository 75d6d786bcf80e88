package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		input string
		want  string
	}{
		{"~/docs", filepath.Join(home, "docs")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("LoadFile should return false for missing file")
	}
}

func TestLoadFile_Partial(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "mdr")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`theme = "dark"`+"\n"), 0644)

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true for existing file")
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "dark")
	}
	// RecentMax should remain the default since it wasn't in the file.
	if cfg.RecentMax != 10 {
		t.Errorf("RecentMax changed unexpectedly: %d", cfg.RecentMax)
	}
}

func TestLoadFile_Full(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "mdr")
	os.MkdirAll(dir, 0755)
	content := `theme = "light"
extensions = ["md", ".mdown"]
recent_max = 5
font_min = 10
font_max = 48
body_font_size = 18
code_font_size = 15
flush_delay_ms = 250
tree_width = 40
serve_addr = "127.0.0.1:8787"
`
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644)

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true")
	}

	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "light")
	}
	// Extensions are normalized to lowercase with a leading dot.
	want := []string{".md", ".mdown"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("Extensions = %v, want %v", cfg.Extensions, want)
	}
	for i := range want {
		if cfg.Extensions[i] != want[i] {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], want[i])
		}
	}
	if cfg.RecentMax != 5 {
		t.Errorf("RecentMax = %d, want 5", cfg.RecentMax)
	}
	if cfg.FontMin != 10 || cfg.FontMax != 48 {
		t.Errorf("Font bounds = %d..%d, want 10..48", cfg.FontMin, cfg.FontMax)
	}
	if cfg.BodyFontSize != 18 {
		t.Errorf("BodyFontSize = %d, want 18", cfg.BodyFontSize)
	}
	if cfg.CodeFontSize != 15 {
		t.Errorf("CodeFontSize = %d, want 15", cfg.CodeFontSize)
	}
	if cfg.FlushDelay != 250*time.Millisecond {
		t.Errorf("FlushDelay = %v, want 250ms", cfg.FlushDelay)
	}
	if cfg.TreeWidth != 40 {
		t.Errorf("TreeWidth = %d, want 40", cfg.TreeWidth)
	}
	if cfg.ServeAddr != "127.0.0.1:8787" {
		t.Errorf("ServeAddr = %q", cfg.ServeAddr)
	}
}

func TestLoadFile_InvalidValuesIgnored(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "mdr")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte("recent_max = 0\nflush_delay_ms = -5\n"), 0644)

	cfg := Default()
	if _, err := LoadFile(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.RecentMax != 10 {
		t.Errorf("RecentMax = %d, want default 10", cfg.RecentMax)
	}
	if cfg.FlushDelay != 500*time.Millisecond {
		t.Errorf("FlushDelay = %v, want default 500ms", cfg.FlushDelay)
	}
}

func TestLoadFile_CorruptFileLeavesDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "mdr")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte("theme = [unclosed\n"), 0644)

	cfg := Default()
	exists, err := LoadFile(&cfg)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !exists {
		t.Error("LoadFile should report the file existed")
	}
	// Callers log the error and keep going; nothing may be merged.
	def := Default()
	if cfg.Theme != def.Theme || cfg.RecentMax != def.RecentMax || cfg.TreeWidth != def.TreeWidth {
		t.Errorf("cfg modified by corrupt file: %+v", cfg)
	}
}

func TestDir_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	want := filepath.Join(tmp, "mdr")
	if got := Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "mdr")
	if got := Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}
