// Package runtime renders composed templates natively against plain data
// maps, realizing the same contract the generated backend sources rely
// on: safe variable reads recovering to a sentinel, lazily selected
// condition branches, loop-variable indexing and render-time inclusion.
package runtime

import (
	"log/slog"
	"sync"

	"github.com/suitlang/gosuit/template"
)

// Environment holds the shared pieces of rendering: the document loader,
// the filter catalogue and the diagnostic logger. It is safe for
// concurrent use once configured.
type Environment struct {
	mu      sync.RWMutex
	loader  template.Loader
	logger  *slog.Logger
	filters map[string]Filter
}

// NewEnvironment creates an environment with the filesystem loader, the
// default logger and the built-in filters.
func NewEnvironment() *Environment {
	return &Environment{
		loader:  template.NewFileSystemLoader(),
		logger:  slog.Default(),
		filters: DefaultFilters(),
	}
}

// SetLoader replaces the document loader.
func (e *Environment) SetLoader(loader template.Loader) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loader = loader
}

// Loader returns the current document loader.
func (e *Environment) Loader() template.Loader {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loader
}

// SetLogger replaces the diagnostic logger.
func (e *Environment) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
}

// Logger returns the diagnostic logger.
func (e *Environment) Logger() *slog.Logger {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.logger
}

// RegisterFilter adds or replaces a named filter.
func (e *Environment) RegisterFilter(name string, filter Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters[name] = filter
}

// Filter returns the named filter and whether it is registered.
func (e *Environment) Filter(name string) (Filter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.filters[name]
	return f, ok
}

// Template loads, composes and tokenizes the named document for repeated
// rendering.
func (e *Environment) Template(name string) (*Template, error) {
	doc, err := template.Load(name, e.Loader())
	if err != nil {
		return nil, err
	}
	part, err := doc.Part()
	if err != nil {
		return nil, err
	}
	return &Template{env: e, doc: doc, part: part}, nil
}
