// Package parser turns enumerated tag occurrences into typed AST nodes and
// tokenizes template text into parts.
package parser

import (
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

var defaultTokenizer = lexer.NewTokenizer()

// Parse tokenizes text into a Part: residual placeholder-bearing text plus
// the typed nodes for every extracted top-level tag occurrence, in order.
// Text already free of recognized tags yields a part with zero nodes.
func Parse(text string) (*nodes.Part, error) {
	residual, spans, err := defaultTokenizer.Split(text)
	if err != nil {
		return nil, err
	}
	part := &nodes.Part{Text: residual}
	for _, span := range spans {
		node, err := ParseTag(span)
		if err != nil {
			return nil, err
		}
		part.Nodes = append(part.Nodes, node)
	}
	return part, nil
}

// ParseTag parses one enumerated tag occurrence into its typed node,
// dispatching on the tag name. Unrecognized names produce a passthrough
// node.
func ParseTag(raw string) (nodes.Node, error) {
	base, err := parseBase(raw)
	if err != nil {
		return nil, err
	}
	switch base.TagName {
	case "var":
		return parseVariable(base)
	case "iterationvar":
		return parseIterationVariable(base)
	case "iterationkey":
		return parseIterationKey(base)
	case "if":
		return parseCondition(base)
	case "expression":
		return parseExpression(base)
	case "list":
		return parseList(base)
	case "breakpoint":
		return parseBreakpoint(base)
	default:
		return base, nil
	}
}

func parseVariable(base *nodes.Tag) (*nodes.Variable, error) {
	v := &nodes.Variable{Tag: *base}
	v.Path = ParsePath(base.RawBody)
	v.Default, v.HasDefault = base.Attrs.Lookup("d")
	v.Filters = parseFilters(base.Attrs)
	return v, nil
}

// parseIterationVariable reassembles the canonical path from the in, name
// and path attributes the loop rewriting recorded: the iterable's path,
// then the bare loop-key segment, then the trailing member path.
func parseIterationVariable(base *nodes.Tag) (*nodes.IterationVariable, error) {
	v := &nodes.IterationVariable{}
	v.Tag = *base

	path := ParsePath(base.Attrs.Get("in"))
	if name := base.Attrs.Get("name"); name != "" {
		path = append(path, nodes.Key{Text: name})
	}
	path = append(path, ParsePath(base.Attrs.Get("path"))...)

	v.Path = path
	v.Default, v.HasDefault = base.Attrs.Lookup("d")
	v.Filters = parseFilters(base.Attrs)
	return v, nil
}

func parseIterationKey(base *nodes.Tag) (*nodes.IterationKey, error) {
	return &nodes.IterationKey{
		Tag:     *base,
		KeyName: base.Attrs.Get("name"),
		Mod:     base.Attrs.Get("mod"),
	}, nil
}

// parseCondition binds the branches: an explicit condition attribute wins,
// otherwise nested <condition>/<true>/<false> children take over. The true
// branch defaults to the whole body, the false branch to an empty part.
func parseCondition(base *nodes.Tag) (*nodes.Condition, error) {
	c := &nodes.Condition{Tag: *base}

	if cond, ok := base.Attrs.Lookup("condition"); ok {
		part, err := Parse(cond)
		if err != nil {
			return nil, err
		}
		c.Condition = part
	}

	body, err := Parse(base.RawBody)
	if err != nil {
		return nil, err
	}
	c.True = body
	c.False = &nodes.Part{}

	for _, child := range body.Nodes {
		var target **nodes.Part
		switch child.Name() {
		case "condition":
			target = &c.Condition
		case "true":
			target = &c.True
		case "false":
			target = &c.False
		default:
			continue
		}
		part, err := Parse(child.Body())
		if err != nil {
			return nil, err
		}
		*target = part
	}
	return c, nil
}

func parseExpression(base *nodes.Tag) (*nodes.Expression, error) {
	expr, err := Parse(base.RawBody)
	if err != nil {
		return nil, err
	}
	return &nodes.Expression{Tag: *base, Expr: expr}, nil
}

func parseBreakpoint(base *nodes.Tag) (*nodes.Breakpoint, error) {
	content, err := Parse(base.RawBody)
	if err != nil {
		return nil, err
	}
	include, isInclude := base.Attrs.Lookup("include")
	return &nodes.Breakpoint{
		Tag:       *base,
		Slot:      base.Attrs.Get("name"),
		Include:   include,
		IsInclude: isInclude,
		Content:   content,
	}, nil
}

func parseFilters(attrs nodes.Attrs) []nodes.FilterCall {
	var out []nodes.FilterCall
	for _, name := range strings.Split(attrs.Get("filter"), ",") {
		name = strings.TrimSpace(name)
		if name == "" || name == "None" {
			continue
		}
		data, ok := attrs.Lookup(name + "-data")
		out = append(out, nodes.FilterCall{Name: name, Data: data, HasData: ok})
	}
	return out
}
