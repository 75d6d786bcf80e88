package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdreader/mdr/internal/index"
	"github.com/mdreader/mdr/internal/panel"
)

// initIndex runs the initial indexing pass over the folder. Progress
// is pushed through the program so the status bar and the taskbar
// update while the walk is running.
func (a *App) initIndex() tea.Cmd {
	indexer := a.indexer
	return func() tea.Msg {
		err := indexer.IndexAll(func(done, total int) {
			if a.program != nil {
				a.program.Send(indexProgressMsg{done: done, total: total})
			}
		})
		return indexInitDoneMsg{err: err}
	}
}

// reindexFile updates the index entry for a created or modified file.
func (a *App) reindexFile(path string) tea.Cmd {
	if a.indexer == nil {
		return nil
	}
	indexer := a.indexer
	return func() tea.Msg {
		if err := indexer.IndexFile(path); err != nil {
			a.logger.Warn("reindex file", "path", path, "err", err)
		}
		return nil
	}
}

// removeFromIndex drops a deleted or renamed-away file from the index.
func (a *App) removeFromIndex(path string) tea.Cmd {
	if a.indexer == nil {
		return nil
	}
	indexer := a.indexer
	return func() tea.Msg {
		if err := indexer.RemoveFile(path); err != nil {
			a.logger.Warn("remove from index", "path", path, "err", err)
		}
		return nil
	}
}

// searchFiles backs the finder overlay. An empty query lists every
// indexed document; otherwise full-text search runs first, falling
// back to a path/title substring match so partial words still find
// files.
func (a *App) searchFiles(query string) []panel.FinderItem {
	if a.db == nil {
		return nil
	}

	var (
		results []index.SearchResult
		err     error
	)
	if query == "" {
		results, err = a.db.ListAll(100)
	} else {
		results, err = a.db.Search(query, 50)
		if err != nil || len(results) == 0 {
			results, err = a.db.SearchFiles(query, 50)
		}
	}
	if err != nil {
		a.logger.Warn("search", "query", query, "err", err)
		return nil
	}

	items := make([]panel.FinderItem, 0, len(results))
	for _, r := range results {
		items = append(items, panel.FinderItem{
			Title: r.Title,
			Path:  r.Path,
			Extra: r.Path,
		})
	}
	return items
}
