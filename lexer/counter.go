// Package lexer disambiguates and extracts the Suit tag vocabulary from
// raw template text. Nested same-named tags are told apart by suffixing
// every occurrence with a unique numeric id before any span matching runs.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Tags is the recognized template tag vocabulary. iterationvar and
// iterationkey are never authored directly; they are produced by the
// loop-body rewriting in the parser.
var Tags = []string{
	"var", "if", "list", "breakpoint", "expression",
	"condition", "true", "false", "iterationvar", "iterationkey",
}

// TagCounter enumerates nested tags so that <p><p></p></p> becomes
// <p_0><p_1></p_1></p_0>. Openers are assigned sequential ids from a stack;
// closers take the id popped for their matching opener. Already-suffixed
// tags are left untouched, so counting is idempotent over its own output.
type TagCounter struct {
	tags    []string
	pattern *regexp.Regexp
}

// NewTagCounter creates a counter over the given tag names. With no names
// it covers the full recognized vocabulary.
func NewTagCounter(tags ...string) *TagCounter {
	if len(tags) == 0 {
		tags = Tags
	}
	return &TagCounter{
		tags:    tags,
		pattern: regexp.MustCompile(`<(/?(?:` + strings.Join(tags, "|") + `))([\s>])`),
	}
}

// Count enumerates all recognized tags found in the expression. It fails
// with a ParseError when a closing tag appears without a matching opener.
func (c *TagCounter) Count(expression string) (string, error) {
	var stack []int
	next := 0
	mismatched := false

	out := c.pattern.ReplaceAllStringFunc(expression, func(match string) string {
		sub := c.pattern.FindStringSubmatch(match)
		tag := sub[1]
		if strings.HasPrefix(tag, "/") {
			if len(stack) == 0 {
				mismatched = true
				return match
			}
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			return strings.Replace(match, tag, fmt.Sprintf("%s_%d", tag, id), 1)
		}
		id := next
		next++
		stack = append(stack, id)
		return strings.Replace(match, tag, fmt.Sprintf("%s_%d", tag, id), 1)
	})

	if mismatched {
		return "", NewParseError("opening/closing tags mismatch found", expression)
	}
	return out, nil
}

var (
	decountOpenPattern  = regexp.MustCompile(`<(\w+?)(_\d+)([\s>])`)
	decountClosePattern = regexp.MustCompile(`</(\w+?)(_\d+)>`)
)

// Decount strips all numeric enumeration suffixes from the template, so
// Decount(Count(t)) == t for any well-nested t.
func (c *TagCounter) Decount(template string) string {
	template = decountOpenPattern.ReplaceAllString(template, "<$1$3")
	template = decountClosePattern.ReplaceAllString(template, "</$1>")
	return template
}
