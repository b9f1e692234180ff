package syntax

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

var (
	// Stray percent signs must survive Python's %-formatting; placeholders
	// and date-format verbs are left alone.
	strayPercentPattern  = regexp.MustCompile(`%[^sdmiHMyS]`)
	pyIncludeDataPattern = regexp.MustCompile(`(?s)SuitRunTime\.include\((\{.*?\}), `)
)

var pyBoolSpelling = strings.NewReplacer(
	"&&", "and",
	"||", "or",
	"true", "True",
	"false", "False",
)

// Python emits source for the Python-family runtime: percent-style string
// formatting, word-form logical operators, SuitRunTime/SuitFilters call
// forms.
type Python struct{}

// NewPython creates the Python backend.
func NewPython() *Python {
	return &Python{}
}

// Name returns the backend's artifact key.
func (p *Python) Name() string { return "py" }

// Compile turns a part into one %-formatted string expression over its
// compiled node expressions.
func (p *Python) Compile(part *nodes.Part) (string, error) {
	text := strings.ReplaceAll(part.Text, `"`, `\"`)
	text = lexer.PlaceholderPattern.ReplaceAllString(text, "%s")
	text = strayPercentPattern.ReplaceAllStringFunc(text, func(m string) string {
		return "%" + m
	})

	if len(part.Nodes) > 0 {
		args, err := compileNodes(p, part.Nodes)
		if err != nil {
			return "", err
		}
		return `"` + text + `" % (` + strings.Join(args, ", ") + `)`, nil
	}
	return strings.ReplaceAll(`"`+text+`"`, "%%", "%"), nil
}

// VarExpr emits the safe context read.
func (p *Python) VarExpr(path nodes.Path, def string, hasDefault bool) string {
	if !hasDefault {
		def = "None"
	}
	return fmt.Sprintf("SuitRunTime.var(lambda self: self.data%s, %s, self)", path.Subscript(), def)
}

// Stringify wraps the expression in the display conversion.
func (p *Python) Stringify(expr string) string {
	return fmt.Sprintf("SuitRunTime.stringify(%s)", expr)
}

// Condition translates the engine-neutral boolean spelling to word forms
// and selects a branch lazily.
func (p *Python) Condition(cond, truthy, falsy string) string {
	cond = pyBoolSpelling.Replace(cond)
	if falsy == "" {
		falsy = `""`
	}
	return fmt.Sprintf("SuitRunTime.opt(%s, lambda: %s, lambda: %s)", cond, truthy, falsy)
}

// List binds the loop variable per element and concatenates the body. When
// the body carries a nested include call, the loop variable is injected
// into its scope map so included sub-templates see it.
func (p *Python) List(body, loopVar, iterable string) string {
	body = injectLoopScope(body, loopVar, pyIncludeDataPattern, "SuitRunTime.include(")
	return fmt.Sprintf("SuitRunTime.list(lambda %s: %s, %s)", loopVar, body, iterable)
}

// Expression evaluates the raw expression and yields the value directly.
func (p *Python) Expression(expr string) string {
	return fmt.Sprintf("SuitRunTime.expression(%s)", expr)
}

// Include defers to the runtime: merge the scope-data fragment over the
// enclosing context and render the named compiled document.
func (p *Python) Include(name, body string) (string, error) {
	return fmt.Sprintf("SuitRunTime.include({}, '%s', lambda: self.data, '%s')", name, body), nil
}

// Filter applies one named runtime filter.
func (p *Python) Filter(name, expr, data string, hasData bool) string {
	if !hasData {
		return fmt.Sprintf("SuitFilters._%s(%s)", name, expr)
	}
	return fmt.Sprintf("SuitFilters._%s(%s, %s)", name, expr, data)
}

// injectLoopScope rewrites the scope map of a nested include call so the
// loop variable is visible inside the included document.
func injectLoopScope(body, loopVar string, pattern *regexp.Regexp, callPrefix string) string {
	m := pattern.FindStringSubmatch(body)
	if m == nil {
		return body
	}
	scope := m[1]
	addition := `"` + loopVar + `": ` + loopVar
	var merged string
	if scope == "{}" {
		merged = "{" + addition + "}"
	} else {
		merged = strings.TrimRight(scope, "}") + ", " + addition + "}"
	}
	return strings.ReplaceAll(body, callPrefix+scope+", ", callPrefix+merged+", ")
}
