package syntax

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

var jsIncludeDataPattern = regexp.MustCompile(`(?s)suit\.SuitRunTime\.include\((\{.*?\}), `)

// JavaScript emits source for the client-side runtime: brace-indexed
// placeholders with .format(), pass-through logical operators, the
// suit.SuitRunTime/suit.SuitFilters call forms.
type JavaScript struct{}

// NewJavaScript creates the JavaScript backend.
func NewJavaScript() *JavaScript {
	return &JavaScript{}
}

// Name returns the backend's artifact key.
func (j *JavaScript) Name() string { return "js" }

// Compile turns a part into one formatted string expression over its
// compiled node expressions.
func (j *JavaScript) Compile(part *nodes.Part) (string, error) {
	text := strings.ReplaceAll(part.Text, `"`, `\"`)
	text = lexer.PlaceholderPattern.ReplaceAllString(text, "{$1}")

	if len(part.Nodes) > 0 {
		args, err := compileNodes(j, part.Nodes)
		if err != nil {
			return "", err
		}
		return `"` + text + `".format(` + strings.Join(args, ", ") + `)`, nil
	}
	return `"` + text + `"`, nil
}

// VarExpr emits the safe context read.
func (j *JavaScript) VarExpr(path nodes.Path, def string, hasDefault bool) string {
	if !hasDefault {
		def = "null"
	}
	return fmt.Sprintf("suit.SuitRunTime.variable(function(){ return data%s; }, %s)", path.Subscript(), def)
}

// Stringify wraps the expression in the display conversion.
func (j *JavaScript) Stringify(expr string) string {
	return fmt.Sprintf("suit.SuitRunTime.stringify(%s)", expr)
}

// Condition selects a branch lazily; the engine-neutral boolean spelling
// already is the native one.
func (j *JavaScript) Condition(cond, truthy, falsy string) string {
	return fmt.Sprintf("suit.SuitRunTime.opt(%s, function() {return (%s)}, function() {return (%s)})",
		cond, truthy, falsy)
}

// List binds the loop variable per element and concatenates the body,
// injecting the loop variable into a nested include's scope map and
// turning member spellings of the loop variable into index reads.
func (j *JavaScript) List(body, loopVar, iterable string) string {
	body = injectLoopScope(body, loopVar, jsIncludeDataPattern, "suit.SuitRunTime.include(")
	body = strings.ReplaceAll(body, "."+loopVar+")", "["+loopVar+"])")
	return fmt.Sprintf("suit.SuitRunTime.list(function(%s) { return %s; }, (%s))", loopVar, body, iterable)
}

// Expression evaluates the raw expression and yields the value directly.
func (j *JavaScript) Expression(expr string) string {
	return fmt.Sprintf("eval(%s)", expr)
}

// Include compiles the scope-data fragment into a function and defers the
// merge and render to the client runtime.
func (j *JavaScript) Include(name, body string) (string, error) {
	compiled, err := compileText(j, body)
	if err != nil {
		return "", err
	}
	fn := fmt.Sprintf("function(data) { return %s ; }", compiled)
	return fmt.Sprintf("suit.SuitRunTime.include({}, '%s', function() { return data }, %s)", name, fn), nil
}

// Filter maps a filter name onto the fixed client-side helper catalogue.
// Unrecognized names fall back to the default stringify wrap, as do the
// collection helpers whose results still need display conversion.
func (j *JavaScript) Filter(name, expr, data string, hasData bool) string {
	if !hasData {
		data = "null"
	}
	switch name {
	case "length":
		expr = fmt.Sprintf("suit.SuitFilters.get_length(%s, %s)", expr, expr)
	case "startswith":
		expr = fmt.Sprintf("suit.SuitFilters.startswith(%s, %s)", expr, data)
	case "in":
		expr = fmt.Sprintf("suit.SuitFilters.inArray(%s, %s)", expr, data)
	case "notin":
		expr = fmt.Sprintf("!suit.SuitFilters.inArray(%s, %s)", expr, data)
	case "contains":
		expr = fmt.Sprintf("suit.SuitFilters.contains(%s, %s)", expr, data)
	case "bool":
		return fmt.Sprintf("suit.SuitFilters.to_bool(%s)", expr)
	case "int":
		return fmt.Sprintf("suit.SuitFilters.str2int(%s)", expr)
	case "str":
		return fmt.Sprintf("suit.SuitFilters.to_str(%s)", expr)
	case "dateformat":
		return fmt.Sprintf("suit.SuitFilters.dateformat(%s, %s)", expr, data)
	case "usebr":
		return fmt.Sprintf("suit.SuitFilters.usebr(%s)", expr)
	case "plural_form":
		return fmt.Sprintf("suit.SuitFilters.plural_form(%s, %s)", expr, data)
	case "html":
		return fmt.Sprintf("suit.SuitFilters.html(%s)", expr)
	}
	return fmt.Sprintf("suit.SuitRunTime.stringify(%s)", expr)
}
