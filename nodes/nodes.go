// Package nodes defines the typed AST for the Suit template language. All
// nodes are pure data built by the parser and immutable afterwards.
package nodes

import "strings"

// Kind identifies the concrete variant of a tag node.
type Kind int

const (
	KindPassthrough Kind = iota
	KindVariable
	KindIterationVariable
	KindIterationKey
	KindCondition
	KindExpression
	KindList
	KindBreakpoint
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindIterationVariable:
		return "iterationvar"
	case KindIterationKey:
		return "iterationkey"
	case KindCondition:
		return "condition"
	case KindExpression:
		return "expression"
	case KindList:
		return "list"
	case KindBreakpoint:
		return "breakpoint"
	default:
		return "passthrough"
	}
}

// Attr is one name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute collection with unique names. Later
// duplicates overwrite earlier values in place.
type Attrs []Attr

// Get returns the value for name, or the empty string when absent.
func (a Attrs) Get(name string) string {
	v, _ := a.Lookup(name)
	return v
}

// Lookup returns the value for name and whether it is present.
func (a Attrs) Lookup(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set stores a value, replacing an existing attribute of the same name.
func (a Attrs) Set(name, value string) Attrs {
	for i, attr := range a {
		if attr.Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Name: name, Value: value})
}

// Node is the interface implemented by all tag nodes.
type Node interface {
	Kind() Kind
	Name() string
	Attributes() Attrs
	Body() string
}

// Tag is the base of the node hierarchy and the passthrough variant for
// tag names with no template-engine meaning.
type Tag struct {
	TagName string
	Attrs   Attrs
	RawBody string
}

// Kind returns KindPassthrough.
func (t *Tag) Kind() Kind { return KindPassthrough }

// Name returns the tag name with any enumeration suffix stripped.
func (t *Tag) Name() string { return t.TagName }

// Attributes returns the ordered attribute collection.
func (t *Tag) Attributes() Attrs { return t.Attrs }

// Body returns the raw body text between the opener and its closer.
func (t *Tag) Body() string { return t.RawBody }

// Part is a tokenized span of template text: residual text bearing dense
// 0-based placeholders plus the nodes they stand for, in first-appearance
// order.
type Part struct {
	Text  string
	Nodes []Node
}

// Empty reports whether the part carries neither text nor nodes.
func (p *Part) Empty() bool {
	return p == nil || (p.Text == "" && len(p.Nodes) == 0)
}

// Key is one segment of a canonical access path. Quoted segments are
// literal keys; bare segments are resolved at render time, either as a
// numeric index or against the enclosing loop bindings.
type Key struct {
	Text   string
	Quoted bool
}

// Path is the canonical ordered key sequence of a variable access,
// unifying dot and bracket notation.
type Path []Key

// Subscript renders the path in bracket notation, the spelling shared by
// both target languages: quoted keys as ["text"], bare keys as [text].
func (p Path) Subscript() string {
	var b strings.Builder
	for _, k := range p {
		if k.Quoted {
			b.WriteString(`["` + k.Text + `"]`)
		} else {
			b.WriteString(`[` + k.Text + `]`)
		}
	}
	return b.String()
}

// String returns the subscript form.
func (p Path) String() string { return p.Subscript() }

// FilterCall is one (filter name, optional argument) pair. Data holds the
// raw argument text from the <name>-data attribute when present.
type FilterCall struct {
	Name    string
	Data    string
	HasData bool
}

// Variable reads a path against the render context, threads the result
// through its filters left to right and falls back to the default
// expression, or the none sentinel, on any resolution failure.
type Variable struct {
	Tag
	Path       Path
	Filters    []FilterCall
	Default    string
	HasDefault bool
}

// Kind returns KindVariable.
func (v *Variable) Kind() Kind { return KindVariable }

// IterationVariable is a variable reference produced by loop-body
// rewriting: its path indexes the iterable through the bare loop-variable
// segment instead of naming the loop variable directly.
type IterationVariable struct {
	Variable
}

// Kind returns KindIterationVariable.
func (v *IterationVariable) Kind() Kind { return KindIterationVariable }

// IterationKey stands for the loop key itself, optionally modified (the
// synthetic numeric-index reference compiles to key + 1).
type IterationKey struct {
	Tag
	KeyName string
	Mod     string
}

// Kind returns KindIterationKey.
func (k *IterationKey) Kind() Kind { return KindIterationKey }

// Expr returns the source spelling of the key reference.
func (k *IterationKey) Expr() string { return k.KeyName + k.Mod }

// Condition selects between two branch sub-documents on an expression.
// True defaults to the whole body and False to an empty part when no
// explicit children are given.
type Condition struct {
	Tag
	Condition *Part
	True      *Part
	False     *Part
}

// Kind returns KindCondition.
func (c *Condition) Kind() Kind { return KindCondition }

// Expression evaluates its body as a raw expression and yields the value
// directly, without stringification.
type Expression struct {
	Tag
	Expr *Part
}

// Kind returns KindExpression.
func (e *Expression) Kind() Kind { return KindExpression }

// List iterates an iterable, binding the loop key on each pass. The body
// has been rewritten so every reference to the loop variables indexes the
// iterable; no runtime binding environment is needed.
type List struct {
	Tag
	Key           string
	Value         string
	DictIteration bool
	Iterable      *Variable
	IterableName  string
	LoopBody      *Part
}

// Kind returns KindList.
func (l *List) Kind() Kind { return KindList }

// Breakpoint is a named slot a child template may override, or a marker
// for splicing in an external document. An include carrying a brace-leading
// body defers to render time with the body as its scope-data fragment.
type Breakpoint struct {
	Tag
	Slot      string
	Include   string
	IsInclude bool
	Content   *Part
}

// Kind returns KindBreakpoint.
func (b *Breakpoint) Kind() Kind { return KindBreakpoint }
