package runtime

import (
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
	"github.com/suitlang/gosuit/parser"
	"github.com/suitlang/gosuit/template"
)

// Template is one composed document bound to an environment, ready for
// repeated rendering.
type Template struct {
	env  *Environment
	doc  *template.Document
	part *nodes.Part
}

// Name returns the dotted logical document name.
func (t *Template) Name() string { return t.doc.Name }

// Document returns the underlying composed document.
func (t *Template) Document() *template.Document { return t.doc }

// Render renders the template against a data map.
func (t *Template) Render(data map[string]interface{}) (string, error) {
	return renderPart(t.env, NewContext(data), t.part)
}

// renderPart substitutes every placeholder of the part with its rendered
// node, in placeholder order.
func renderPart(env *Environment, c *Context, part *nodes.Part) (string, error) {
	if part == nil {
		return "", nil
	}
	if len(part.Nodes) == 0 {
		return part.Text, nil
	}

	var renderErr error
	out := lexer.PlaceholderPattern.ReplaceAllStringFunc(part.Text, func(m string) string {
		if renderErr != nil {
			return m
		}
		idx, err := strconv.Atoi(lexer.PlaceholderPattern.FindStringSubmatch(m)[1])
		if err != nil || idx >= len(part.Nodes) {
			renderErr = NewError(ErrorKindRender, "placeholder has no node", m)
			return m
		}
		rendered, err := renderNode(env, c, part.Nodes[idx])
		if err != nil {
			renderErr = err
			return m
		}
		return rendered
	})
	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// renderNode renders one typed node to output text.
func renderNode(env *Environment, c *Context, n nodes.Node) (string, error) {
	switch t := n.(type) {
	case *nodes.IterationKey:
		return renderIterationKey(c, t)
	case *nodes.IterationVariable:
		v, err := evalVariable(env, c, &t.Variable, true)
		if err != nil {
			return "", err
		}
		return Stringify(v), nil
	case *nodes.Variable:
		v, err := evalVariable(env, c, t, true)
		if err != nil {
			return "", err
		}
		return Stringify(v), nil
	case *nodes.Condition:
		if t.Condition == nil {
			return "", lexer.NewParseError("if tag has no condition", t.RawBody)
		}
		pass, err := evalTruth(env, c, t.Condition)
		if err != nil {
			return "", err
		}
		if pass {
			return renderPart(env, c, t.True)
		}
		return renderPart(env, c, t.False)
	case *nodes.Expression:
		v, err := evalValue(env, c, t.Expr)
		if err != nil {
			return "", err
		}
		return Stringify(v), nil
	case *nodes.List:
		return renderList(env, c, t)
	case *nodes.Breakpoint:
		if t.IsInclude && strings.HasPrefix(t.RawBody, "{") {
			return renderInclude(env, c, t)
		}
		return renderPart(env, c, t.Content)
	default:
		return "", NewError(ErrorKindRender, "tag has no native realization", n.Name())
	}
}

// renderIterationKey yields the enclosing loop key, optionally run through
// its modifier expression.
func renderIterationKey(c *Context, k *nodes.IterationKey) (string, error) {
	val, ok := c.Local(k.KeyName)
	if !ok {
		return "", NewError(ErrorKindRender, "loop key used outside its loop", k.KeyName)
	}
	if strings.TrimSpace(k.Mod) == "" {
		return Stringify(val), nil
	}
	modified, err := evalSource(literal(val) + k.Mod)
	if err != nil {
		return "", NewErrorWithCause(ErrorKindRender, "loop key modifier failed", k.Expr(), err)
	}
	return Stringify(modified), nil
}

// evalVariable performs the safe context read. Resolved strings are
// escaped for markup; a miss falls back to the rendered default or the
// sentinel; filters run left to right on the outcome.
func evalVariable(env *Environment, c *Context, v *nodes.Variable, escape bool) (interface{}, error) {
	val := Resolve(c, v.Path)
	if s, ok := val.(string); ok && escape {
		val = html.EscapeString(s)
	}
	if IsNone(val) && v.HasDefault {
		rendered, err := renderText(env, c, v.Default)
		if err != nil {
			return nil, err
		}
		val = rendered
	}

	for _, f := range v.Filters {
		data, hasData := "", false
		if f.HasData {
			rendered, err := renderText(env, c, f.Data)
			if err != nil {
				return nil, err
			}
			data, hasData = rendered, true
		}
		filter, ok := env.Filter(f.Name)
		if !ok {
			return nil, NewError(ErrorKindFilter, "unknown filter", f.Name)
		}
		out, err := filter(val, data, hasData)
		if err != nil {
			return nil, err
		}
		val = out
	}
	return val, nil
}

// renderList evaluates the loop body once per element with the loop key
// bound. Slices iterate by index, maps by key in sorted order; the
// sentinel and non-iterables contribute nothing.
func renderList(env *Environment, c *Context, l *nodes.List) (string, error) {
	iterable, err := evalVariable(env, c, l.Iterable, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	switch t := iterable.(type) {
	case []interface{}:
		for i := range t {
			out, err := renderPart(env, c.WithLocal(l.Key, i), l.LoopBody)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out, err := renderPart(env, c.WithLocal(l.Key, k), l.LoopBody)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
	}
	return b.String(), nil
}

// renderInclude renders a deferred inclusion: the body renders to a JSON
// scope fragment, the fragment merges over a copy of the enclosing data
// and the target document renders against the result. A malformed scope
// is diagnosed and skipped rather than aborting the render.
func renderInclude(env *Environment, c *Context, bp *nodes.Breakpoint) (string, error) {
	scopeText, err := renderText(env, c, bp.RawBody)
	if err != nil {
		return "", err
	}

	merged := make(map[string]interface{}, len(c.data))
	for k, v := range c.data {
		merged[k] = v
	}
	scope, err := ParseScope(scopeText)
	if err != nil {
		env.Logger().Warn("include scope is not a JSON object, rendering with the enclosing data",
			"document", bp.Include, "scope", scopeText)
	}
	for k, v := range scope {
		merged[k] = v
	}

	sub, err := env.Template(bp.Include)
	if err != nil {
		return "", NewErrorWithCause(ErrorKindInclude, "include target failed to load", bp.Include, err)
	}
	return sub.Render(merged)
}

// evalTruth renders a condition part into expression text, with every
// placeholder substituted by its resolved value, and evaluates it for
// branch selection.
func evalTruth(env *Environment, c *Context, part *nodes.Part) (bool, error) {
	expr, err := substitute(env, c, part)
	if err != nil {
		return false, err
	}
	pass, err := truthy(expr)
	if err != nil {
		return false, NewErrorWithCause(ErrorKindCondition, "condition failed to evaluate", expr, err)
	}
	return pass, nil
}

// evalValue renders an expression part and evaluates it, yielding the
// value itself.
func evalValue(env *Environment, c *Context, part *nodes.Part) (interface{}, error) {
	expr, err := substitute(env, c, part)
	if err != nil {
		return nil, err
	}
	v, err := evalSource(expr)
	if err != nil {
		return nil, NewErrorWithCause(ErrorKindRender, "expression failed to evaluate", expr, err)
	}
	return v, nil
}

// substitute renders a part destined for evaluation rather than output.
// Values splice in textually, the same way the generated sources format
// them into the expression string before their eval.
func substitute(env *Environment, c *Context, part *nodes.Part) (string, error) {
	return renderPart(env, c, part)
}

// renderText parses and renders an attribute text fragment, itself
// possibly containing tags.
func renderText(env *Environment, c *Context, text string) (string, error) {
	part, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	return renderPart(env, c, part)
}
