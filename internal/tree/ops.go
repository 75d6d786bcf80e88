package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateFile creates a new Markdown file inside dir, appending the
// first filtered extension when the name has none. Existing files are
// never overwritten.
func CreateFile(dir, name string, exts []string) (string, error) {
	if !matchExt(name, exts) && len(exts) > 0 {
		name += exts[0]
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", name)
	}
	if err := os.WriteFile(path, []byte{}, 0644); err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	return path, nil
}

// CreateDir creates a new directory inside dir.
func CreateDir(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", name)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	return path, nil
}

// Rename renames a file or directory in place, keeping its parent.
// The new path is returned so callers can migrate session decoration.
func Rename(oldPath, newName string) (string, error) {
	if strings.ContainsRune(newName, os.PathSeparator) {
		return "", fmt.Errorf("name must not contain path separators")
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if newPath == oldPath {
		return oldPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("%s already exists", newName)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return newPath, nil
}

// Delete removes a file, or a directory with its contents.
func Delete(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
