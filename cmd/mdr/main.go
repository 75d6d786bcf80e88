package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mdreader/mdr/internal/app"
	"github.com/mdreader/mdr/internal/config"
	"github.com/mdreader/mdr/internal/session"
)

func main() {
	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating config dir:", err)
		os.Exit(1)
	}

	logger := newLogger()

	// A missing or unreadable config file never aborts startup; the
	// defaults carry the session.
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		logger.Warn("config file unreadable, using defaults", "err", err)
		cfg = config.Default()
	}

	_, statErr := os.Stat(config.StatePath())
	freshSession := os.IsNotExist(statErr)

	store := session.NewStore(config.StatePath())
	sess := session.NewModel(store, session.Limits{
		RecentMax:  cfg.RecentMax,
		FontMin:    cfg.FontMin,
		FontMax:    cfg.FontMax,
		FlushDelay: cfg.FlushDelay,
	}, logger)

	// Config values seed a fresh session; afterwards the persisted
	// preferences win.
	if freshSession {
		sess.SetTheme(cfg.Theme)
		sess.SetFont(session.FontSettings{
			BodySize:   cfg.BodyFontSize,
			CodeSize:   cfg.CodeFontSize,
			CodeFamily: cfg.CodeFontFamily,
		})
	}

	// The command-line surface is a single optional positional
	// argument: a file or folder to open.
	arg := ""
	if len(os.Args) > 1 {
		arg = os.Args[1]
	}
	root, initialFile, startupErr := resolveStartPaths(arg, cfg, sess)

	a := app.New(cfg, sess, root, initialFile, startupErr, logger)
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.SetProgram(p)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to the config directory. Logging to
// stderr would corrupt the alternate screen, so failures fall back to
// a discarding logger.
func newLogger() *log.Logger {
	f, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(io.Discard)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
	})
}

// resolveStartPaths decides the folder to open and optionally the file
// to show first. The single positional argument may name a file or a
// folder; with no argument the last session is restored, and a bad
// path degrades to the default view with an error to show in the UI.
func resolveStartPaths(arg string, cfg config.Config, sess *session.Model) (root, initialFile, startupErr string) {
	if arg != "" {
		path := config.ExpandHome(arg)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			startupErr = fmt.Sprintf("cannot open %s", arg)
		case info.IsDir():
			return path, "", ""
		case matchesExt(path, cfg.Extensions):
			return filepath.Dir(path), path, ""
		default:
			startupErr = fmt.Sprintf("%s is not a Markdown file", filepath.Base(path))
		}
	}

	// Restore the previous session when it still exists.
	if last := sess.LastFolder(); last != "" {
		if info, err := os.Stat(last); err == nil && info.IsDir() {
			file := sess.LastFile()
			if file != "" {
				if info, err := os.Stat(file); err != nil || info.IsDir() {
					file = ""
				}
			}
			return last, file, startupErr
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return cwd, "", startupErr
}

func matchesExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
