// Package gosuit compiles Suit template documents, an HTML-embedded
// template language with inheritance and inclusion, into equivalent
// Python and JavaScript sources, and renders them natively against plain
// data maps.
package gosuit

import (
	"github.com/suitlang/gosuit/runtime"
	"github.com/suitlang/gosuit/syntax"
	"github.com/suitlang/gosuit/template"
)

// Version is the current gosuit version.
const Version = "1.0.0"

// Convenience aliases so most callers only import the root package.
type (
	// Loader resolves a template source path to its text.
	Loader = template.Loader
	// Environment holds the shared rendering configuration.
	Environment = runtime.Environment
)

// NewFileSystemLoader creates a loader searching the given base paths.
func NewFileSystemLoader(basePaths ...string) *template.FileSystemLoader {
	return template.NewFileSystemLoader(basePaths...)
}

// NewMapLoader creates a loader over an in-memory path-to-text map.
func NewMapLoader(templates map[string]string) *template.MapLoader {
	return template.NewMapLoader(templates)
}

// NewEnvironment creates a rendering environment with the default loader,
// logger and filter catalogue.
func NewEnvironment() *Environment {
	return runtime.NewEnvironment()
}

// Artifacts is the compilation product of one document: one source
// expression per backend plus the extracted resource blocks.
type Artifacts struct {
	// Name is the dotted logical document name.
	Name string
	// Python and JavaScript hold the backend source expressions.
	Python     string
	JavaScript string
	// Style and Script hold the document's extracted resource blocks.
	Style  string
	Script string
}

// Compile loads, composes and compiles the named document with both
// backends.
func Compile(name string, loader Loader) (*Artifacts, error) {
	doc, err := template.Load(name, loader)
	if err != nil {
		return nil, err
	}
	compiled, err := doc.Compile(syntax.Engines())
	if err != nil {
		return nil, err
	}
	return &Artifacts{
		Name:       doc.Name,
		Python:     compiled["py"],
		JavaScript: compiled["js"],
		Style:      doc.Style,
		Script:     doc.Script,
	}, nil
}

// Render loads, composes and renders the named document against data
// with a throwaway environment bound to the loader.
func Render(name string, loader Loader, data map[string]interface{}) (string, error) {
	env := runtime.NewEnvironment()
	env.SetLoader(loader)
	tpl, err := env.Template(name)
	if err != nil {
		return "", err
	}
	return tpl.Render(data)
}
