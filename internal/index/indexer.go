package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Indexer feeds folder contents into the search database.
type Indexer struct {
	db   *DB
	root string
	exts []string
}

func NewIndexer(db *DB, root string, exts []string) *Indexer {
	return &Indexer{db: db, root: root, exts: exts}
}

// IndexAll indexes every matching file under the folder. progress is
// called after each file with (done, total); pass nil to skip
// reporting. Unchanged files are detected by content hash and cost
// only a read.
func (idx *Indexer) IndexAll(progress func(done, total int)) error {
	var paths []string
	filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != idx.root {
			return filepath.SkipDir
		}
		if !info.IsDir() && idx.matches(path) {
			paths = append(paths, path)
		}
		return nil
	})

	for i, path := range paths {
		if err := idx.IndexFile(path); err != nil {
			return err
		}
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return nil
}

// IndexFile indexes a single Markdown file.
func (idx *Indexer) IndexFile(absPath string) error {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath := idx.rel(absPath)

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existingHash, _ := idx.db.GetDocHash(relPath)
	if hash == existingHash {
		return nil
	}

	title := titleFromContent(content)
	if title == "" {
		title = titleFromPath(relPath)
	}

	docID, err := idx.db.UpsertDoc(relPath, title, hash, info.ModTime().Unix(), info.Size())
	if err != nil {
		return fmt.Errorf("upsert doc: %w", err)
	}
	if err := idx.db.UpdateFTS(docID, title, string(content)); err != nil {
		return fmt.Errorf("update FTS: %w", err)
	}
	return nil
}

// RemoveFile drops a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	return idx.db.DeleteDoc(idx.rel(absPath))
}

func (idx *Indexer) rel(absPath string) string {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

func (idx *Indexer) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range idx.exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// titleFromContent returns the text of the first ATX heading.
func titleFromContent(content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}
