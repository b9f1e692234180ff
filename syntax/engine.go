// Package syntax turns tokenized template parts into equivalent source
// expressions for the target-language backends. Both backends realize the
// same semantics through shared primitives, differing only in spelling.
package syntax

import (
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
	"github.com/suitlang/gosuit/parser"
)

// Engine compiles a tokenized part into one target-language source
// expression that, evaluated against a runtime context, yields the
// rendered text.
type Engine interface {
	// Name is the artifact key of the backend.
	Name() string
	// Compile produces the source expression for a whole part.
	Compile(part *nodes.Part) (string, error)
	// VarExpr reads a path against the context, falling back to the
	// compiled default expression when one was given.
	VarExpr(path nodes.Path, def string, hasDefault bool) string
	// Stringify converts the final value of a variable chain to display
	// form.
	Stringify(expr string) string
	// Condition selects a branch on the compiled condition expression.
	Condition(cond, truthy, falsy string) string
	// List evaluates the body once per element of the iterable with the
	// loop variable bound.
	List(body, loopVar, iterable string) string
	// Expression evaluates a raw expression and yields the value directly.
	Expression(expr string) string
	// Include renders a named compiled document against the enclosing
	// context merged with the parsed scope-data body.
	Include(name, body string) (string, error)
	// Filter applies one named filter to the expression.
	Filter(name, expr, data string, hasData bool) string
}

// Engines returns the default backend set, keyed by artifact kind.
func Engines() map[string]Engine {
	return map[string]Engine{
		"py": NewPython(),
		"js": NewJavaScript(),
	}
}

// compileNodes compiles every node of a part into the backend's argument
// expressions, in placeholder order.
func compileNodes(e Engine, list []nodes.Node) ([]string, error) {
	args := make([]string, 0, len(list))
	for _, n := range list {
		src, err := compileNode(e, n)
		if err != nil {
			return nil, err
		}
		args = append(args, src)
	}
	return args, nil
}

// compileNode dispatches one typed node to the backend primitives. A node
// kind with no backend realization is a fatal compile-time error.
func compileNode(e Engine, n nodes.Node) (string, error) {
	switch t := n.(type) {
	case *nodes.IterationKey:
		return t.Expr(), nil
	case *nodes.IterationVariable:
		return compileVariable(e, &t.Variable, true)
	case *nodes.Variable:
		return compileVariable(e, t, true)
	case *nodes.Condition:
		if t.Condition == nil {
			return "", lexer.NewParseError("if tag has no condition", t.RawBody)
		}
		cond, err := e.Compile(t.Condition)
		if err != nil {
			return "", err
		}
		truthy, err := e.Compile(t.True)
		if err != nil {
			return "", err
		}
		falsy, err := e.Compile(t.False)
		if err != nil {
			return "", err
		}
		return e.Condition(cond, truthy, falsy), nil
	case *nodes.List:
		body, err := e.Compile(t.LoopBody)
		if err != nil {
			return "", err
		}
		// The iterable feeds the loop primitive, so its value is left
		// unstringified.
		iterable, err := compileVariable(e, t.Iterable, false)
		if err != nil {
			return "", err
		}
		return e.List(body, t.Key, iterable), nil
	case *nodes.Expression:
		expr, err := e.Compile(t.Expr)
		if err != nil {
			return "", err
		}
		return e.Expression(expr), nil
	case *nodes.Breakpoint:
		if t.IsInclude && strings.HasPrefix(t.RawBody, "{") {
			return e.Include(t.Include, t.RawBody)
		}
		return e.Compile(t.Content)
	default:
		return "", NewUnsupportedTagError(n.Name())
	}
}

// compileVariable emits the safe read, threads it through the filters left
// to right (each wrapping the previous result) and stringifies the final
// value unless it feeds an iterable position.
func compileVariable(e Engine, v *nodes.Variable, stringify bool) (string, error) {
	def, hasDefault := "", false
	if v.HasDefault {
		compiled, err := compileText(e, v.Default)
		if err != nil {
			return "", err
		}
		def, hasDefault = compiled, true
	}

	expr := e.VarExpr(v.Path, def, hasDefault)
	for _, f := range v.Filters {
		data, hasData := "", false
		if f.HasData {
			compiled, err := compileText(e, f.Data)
			if err != nil {
				return "", err
			}
			data, hasData = compiled, true
		}
		expr = e.Filter(f.Name, expr, data, hasData)
	}

	if stringify {
		expr = e.Stringify(expr)
	}
	return expr, nil
}

// compileText compiles an attribute text fragment, itself possibly
// containing tags, into a backend expression.
func compileText(e Engine, text string) (string, error) {
	part, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	return e.Compile(part)
}
