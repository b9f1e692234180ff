package runtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
)

var (
	wordTruePattern  = regexp.MustCompile(`\btrue\b`)
	wordFalsePattern = regexp.MustCompile(`\bfalse\b`)
	wordNullPattern  = regexp.MustCompile(`\bnull\b`)

	sentinelBeforeCmp = regexp.MustCompile(`SuitNone\(\)\s*(==|!=|<=|>=|<|>)`)
	sentinelAfterCmp  = regexp.MustCompile(`(==|!=|<=|>=|<|>)\s*SuitNone\(\)`)
)

var operatorSpelling = strings.NewReplacer(
	"&&", " and ",
	"||", " or ",
)

// predeclared gives evaluated expressions the sentinel's spelling: an
// unresolved variable substitutes its marker textually, and the marker is
// itself a falsy call. SuitLess carries the sentinel's ordering half: it
// compares lesser than every number and equal to nothing.
var predeclared = starlark.StringDict{
	"SuitNone": starlark.NewBuiltin("SuitNone", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return starlark.None, nil
	}),
	"SuitLess": starlark.Float(math.Inf(-1)),
}

// evalSource evaluates one expression string and returns its value. The
// expression arrives in the engine-neutral spelling, so the symbolic
// logical operators and word-form booleans are translated first.
func evalSource(expr string) (interface{}, error) {
	value, err := evalStarlark(expr)
	if err != nil {
		return nil, err
	}
	return fromStarlark(value), nil
}

// truthy evaluates an expression for branch selection.
func truthy(expr string) (bool, error) {
	value, err := evalStarlark(expr)
	if err != nil {
		return false, err
	}
	return bool(value.Truth()), nil
}

func evalStarlark(expr string) (starlark.Value, error) {
	src := operatorSpelling.Replace(expr)
	src = wordTruePattern.ReplaceAllString(src, "True")
	src = wordFalsePattern.ReplaceAllString(src, "False")
	src = wordNullPattern.ReplaceAllString(src, "None")

	// A sentinel that is the direct operand of a comparison takes its
	// ordering form, so a recovered miss selects a branch instead of
	// failing the comparison. Elsewhere it stays the falsy call.
	src = sentinelBeforeCmp.ReplaceAllString(src, "SuitLess $1")
	src = sentinelAfterCmp.ReplaceAllString(src, "$1 SuitLess")

	thread := &starlark.Thread{Name: "suit"}
	return starlark.Eval(thread, "<eval>", src, predeclared)
}

// fromStarlark converts an evaluated value back to the plain data shapes
// the rest of the runtime works with.
func fromStarlark(v starlark.Value) interface{} {
	switch t := v.(type) {
	case starlark.NoneType:
		return None
	case starlark.Bool:
		return bool(t)
	case starlark.Int:
		if n, ok := t.Int64(); ok {
			return int(n)
		}
		return t.String()
	case starlark.Float:
		return float64(t)
	case starlark.String:
		return string(t)
	case *starlark.List:
		out := make([]interface{}, 0, t.Len())
		for i := 0; i < t.Len(); i++ {
			out = append(out, fromStarlark(t.Index(i)))
		}
		return out
	case starlark.Tuple:
		out := make([]interface{}, 0, len(t))
		for _, item := range t {
			out = append(out, fromStarlark(item))
		}
		return out
	case *starlark.Dict:
		out := make(map[string]interface{}, t.Len())
		for _, key := range t.Keys() {
			item, _, _ := t.Get(key)
			out[Stringify(fromStarlark(key))] = fromStarlark(item)
		}
		return out
	default:
		return v.String()
	}
}

// literal spells a value as an expression fragment, so resolved variables
// can be substituted into condition and expression text before evaluation.
func literal(v interface{}) string {
	if IsNone(v) {
		return "None"
	}
	switch t := v.(type) {
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(t)
	case int, int64, float64:
		return fmt.Sprintf("%v", t)
	case map[string]interface{}, []interface{}:
		src := Stringify(t)
		src = wordTruePattern.ReplaceAllString(src, "True")
		src = wordFalsePattern.ReplaceAllString(src, "False")
		src = wordNullPattern.ReplaceAllString(src, "None")
		return src
	default:
		return strconv.Quote(Stringify(t))
	}
}
