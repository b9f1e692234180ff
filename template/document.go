package template

import (
	"regexp"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
	"github.com/suitlang/gosuit/parser"
	"github.com/suitlang/gosuit/syntax"
)

var (
	commentPattern = regexp.MustCompile(`(?s)<!--(.+?)-->`)
	stylePattern   = regexp.MustCompile(`(?s)<style[^>]*>(.*?)</style>`)
	scriptPattern  = regexp.MustCompile(`(?s)<script>(.*?)</script>`)
	rebasePattern  = regexp.MustCompile(`(?s)<rebase(?:\s[^>]*)?>(.+?)</rebase>`)
	includePattern = regexp.MustCompile(`<breakpoint(?:_\d+)? include=("[^"]*"|'[^']*')></breakpoint(?:_\d+)?>`)
)

var breakpointTokenizer = lexer.NewTokenizer("breakpoint")

// Document is one named template with comments stripped, resources
// extracted and all inheritance and inclusion directives resolved. It is
// transient: built, compiled and discarded.
type Document struct {
	// Name is the dotted logical document name artifacts are keyed by.
	Name string
	// Content is the composed body. No <rebase> tag and no include-bearing
	// breakpoint survive composition.
	Content string
	// Style and Script hold the extracted resource blocks verbatim, at
	// most one each per document.
	Style  string
	Script string

	loader Loader
}

// Load resolves and composes the named document. The name may be a dotted
// logical name or a source path. Comments are stripped and the style and
// script blocks extracted before rebase and include run, so resources are
// never tokenized as template text.
func Load(name string, loader Loader) (*Document, error) {
	path := ResolvePath(name)
	text, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	d := &Document{Name: LogicalName(path), loader: loader}
	text = commentPattern.ReplaceAllString(text, "")
	text, d.Style = extractResource(text, stylePattern)
	text, d.Script = extractResource(text, scriptPattern)
	d.Content = lexer.Collapse(text)

	if err := d.rebase(); err != nil {
		return nil, err
	}
	if err := d.include(); err != nil {
		return nil, err
	}
	return d, nil
}

// extractResource removes the first match of pattern from text and returns
// the remaining text and the matched block's inner content.
func extractResource(text string, pattern *regexp.Regexp) (string, string) {
	m := pattern.FindStringSubmatchIndex(text)
	if m == nil {
		return text, ""
	}
	resource := text[m[2]:m[3]]
	return text[:m[0]] + text[m[1]:], resource
}

// rebase resolves template inheritance. When the body opens with
// <rebase>Parent</rebase>, the parent is loaded and composed recursively
// and every parent breakpoint (at any nesting level) whose name the
// current document overrides at top level is replaced, whole element for
// whole element.
func (d *Document) rebase() error {
	m := rebasePattern.FindStringSubmatch(d.Content)
	if m == nil {
		return nil
	}
	parentName := strings.Trim(strings.TrimSpace(m[1]), `'"`)

	parent, err := Load(parentName, d.loader)
	if err != nil {
		return err
	}

	parentBPs, err := breakpoints(parent.Content, true)
	if err != nil {
		return err
	}
	childBPs, err := breakpoints(d.Content, false)
	if err != nil {
		return err
	}

	rebased := parent.Content
	for name, span := range parentBPs {
		if override, ok := childBPs[name]; ok {
			rebased = strings.ReplaceAll(rebased, span, override)
		}
	}
	d.Content = rebased
	return nil
}

// include splices the fully composed body of every document referenced by
// a breakpoint carrying an include attribute. Repeated inclusion of the
// same document is permitted; an unresolved target is fatal.
func (d *Document) include() error {
	var includeErr error
	d.Content = includePattern.ReplaceAllStringFunc(d.Content, func(m string) string {
		if includeErr != nil {
			return m
		}
		target := strings.Trim(includePattern.FindStringSubmatch(m)[1], `'"`)
		sub, err := Load(target, d.loader)
		if err != nil {
			includeErr = err
			return m
		}
		return sub.Content
	})
	return includeErr
}

// breakpoints collects the named breakpoint elements of content into a
// name-keyed map of their de-enumerated full element text. With allLevels
// it recurses into breakpoint bodies; names are unique across all levels.
func breakpoints(content string, allLevels bool) (map[string]string, error) {
	_, spans, err := breakpointTokenizer.Split(content)
	if err != nil {
		return nil, err
	}

	found := make(map[string]string)
	for _, span := range spans {
		node, err := parser.ParseTag(span)
		if err != nil {
			return nil, err
		}
		bp, ok := node.(*nodes.Breakpoint)
		if !ok || bp.Slot == "" {
			continue
		}
		found[bp.Slot] = breakpointTokenizer.Counter().Decount(span)
		if allLevels {
			nested, err := breakpoints(bp.RawBody, true)
			if err != nil {
				return nil, err
			}
			for name, text := range nested {
				found[name] = text
			}
		}
	}
	return found, nil
}

// Part tokenizes the composed body for compilation or rendering.
func (d *Document) Part() (*nodes.Part, error) {
	return parser.Parse(d.Content)
}

// Compile produces one source expression per engine, keyed by the engine
// name. A failure in any engine aborts the document's compilation.
func (d *Document) Compile(engines map[string]syntax.Engine) (map[string]string, error) {
	part, err := d.Part()
	if err != nil {
		return nil, err
	}
	compiled := make(map[string]string, len(engines))
	for key, engine := range engines {
		src, err := engine.Compile(part)
		if err != nil {
			return nil, err
		}
		compiled[key] = src
	}
	return compiled, nil
}
