// Package template loads named template documents and composes multi
// document inheritance and inclusion into one body ready for compilation.
package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Loader resolves a template source path to its text.
type Loader interface {
	Load(path string) (string, error)
}

// FileSystemLoader loads templates from the file system. It accepts one or
// more base paths that are searched in order; when none are provided it
// defaults to the current working directory. Safe for concurrent use.
type FileSystemLoader struct {
	basePaths []string
	mu        sync.RWMutex
}

// NewFileSystemLoader creates a new file system loader.
func NewFileSystemLoader(basePaths ...string) *FileSystemLoader {
	paths := make([]string, 0, len(basePaths))
	for _, p := range basePaths {
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		paths = append(paths, ".")
	}
	return &FileSystemLoader{basePaths: paths}
}

// Load reads the first matching file along the search path.
func (l *FileSystemLoader) Load(path string) (string, error) {
	l.mu.RLock()
	basePaths := append([]string(nil), l.basePaths...)
	l.mu.RUnlock()

	var tried []string
	for _, base := range basePaths {
		fullPath := filepath.Join(base, path)
		tried = append(tried, fullPath)

		data, err := os.ReadFile(fullPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		return string(data), nil
	}
	return "", NewDocumentNotFound(path, tried, os.ErrNotExist)
}

// SetSearchPath replaces the loader's search path.
func (l *FileSystemLoader) SetSearchPath(paths ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.basePaths = append([]string(nil), paths...)
}

// SearchPath returns a copy of the current search path.
func (l *FileSystemLoader) SearchPath() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.basePaths...)
}

// MapLoader loads templates from a map keyed by source path.
type MapLoader struct {
	templates map[string]string
}

// NewMapLoader creates a new map loader.
func NewMapLoader(templates map[string]string) *MapLoader {
	return &MapLoader{templates: templates}
}

// Load returns the mapped text for the path.
func (l *MapLoader) Load(path string) (string, error) {
	if text, ok := l.templates[path]; ok {
		return text, nil
	}
	return "", NewDocumentNotFound(path, nil, nil)
}

// ResolvePath maps a dotted logical document name to its source path:
// views.index becomes views/index.html. Names already carrying the source
// extension pass through unchanged.
func ResolvePath(name string) string {
	if strings.HasSuffix(name, ".html") {
		return name
	}
	return strings.ReplaceAll(name, ".", "/") + ".html"
}

// LogicalName maps a source path back to the dotted logical document name
// compiled artifacts are keyed by.
func LogicalName(path string) string {
	path = strings.TrimSuffix(path, ".html")
	return strings.ReplaceAll(strings.Trim(path, "/"), "/", ".")
}
