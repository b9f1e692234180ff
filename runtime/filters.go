package runtime

import (
	"encoding/json"
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Filter transforms one resolved value. Data carries the rendered filter
// argument when the tag supplied one.
type Filter func(value interface{}, data string, hasData bool) (interface{}, error)

// DefaultFilters returns the built-in filter catalogue.
func DefaultFilters() map[string]Filter {
	return map[string]Filter{
		"length":      filterLength,
		"startswith":  filterStartswith,
		"in":          filterIn,
		"notin":       filterNotIn,
		"contains":    filterContains,
		"bool":        filterBool,
		"int":         filterInt,
		"str":         filterStr,
		"dateformat":  filterDateformat,
		"usebr":       filterUsebr,
		"html":        filterHTML,
		"plural_form": filterPluralForm,
	}
}

func filterLength(value interface{}, _ string, _ bool) (interface{}, error) {
	if IsNone(value) || value == "" {
		return 0, nil
	}
	switch t := value.(type) {
	case string:
		return len(t), nil
	case []interface{}:
		return len(t), nil
	case map[string]interface{}:
		return len(t), nil
	case int, int64, float64:
		return len(Stringify(t)), nil
	default:
		return 0, nil
	}
}

func filterStartswith(value interface{}, data string, hasData bool) (interface{}, error) {
	if IsNone(value) || !hasData {
		return false, nil
	}
	return strings.HasPrefix(Stringify(value), data), nil
}

// filterIn reports membership of the value in the argument. The argument
// arrives as rendered text and must decode to a JSON container; anything
// else, a scalar or undecodable text, is simply not a container and the
// answer is false.
func filterIn(value interface{}, data string, hasData bool) (interface{}, error) {
	if IsNone(value) || !hasData || data == "" {
		return false, nil
	}
	container, ok := asContainer(data)
	if !ok {
		return false, nil
	}
	return contains(container, value), nil
}

func filterNotIn(value interface{}, data string, hasData bool) (interface{}, error) {
	in, err := filterIn(value, data, hasData)
	if err != nil {
		return nil, err
	}
	return !in.(bool), nil
}

// filterContains is the inverted spelling: the value is the container and
// the argument the needle. A value that is not a container answers false.
func filterContains(value interface{}, data string, hasData bool) (interface{}, error) {
	if IsNone(value) || !hasData {
		return false, nil
	}
	var needle interface{} = data
	if n, err := strconv.Atoi(data); err == nil {
		needle = n
	}
	container, ok := asContainer(value)
	if !ok {
		return false, nil
	}
	return contains(container, needle), nil
}

// asContainer accepts a mapping or a sequence, decoding string values
// that spell a JSON container along the way. Everything else is rejected.
func asContainer(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case []interface{}, map[string]interface{}:
		return v, true
	case string:
		var decoded interface{}
		if err := json.Unmarshal([]byte(t), &decoded); err != nil {
			return nil, false
		}
		switch decoded.(type) {
		case []interface{}, map[string]interface{}:
			return decoded, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func contains(container, needle interface{}) bool {
	switch c := container.(type) {
	case []interface{}:
		for _, item := range c {
			if equalValue(item, needle) {
				return true
			}
		}
		return false
	case map[string]interface{}:
		_, ok := c[Stringify(needle)]
		return ok
	default:
		return false
	}
}

// equalValue compares loosely across the numeric shapes JSON decoding and
// resolution produce.
func equalValue(a, b interface{}) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	an, aok := toFloat(a)
	bn, bok := toFloat(b)
	if aok && bok {
		return an == bn
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as == bs
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func filterBool(value interface{}, _ string, _ bool) (interface{}, error) {
	return Truthy(value), nil
}

// Truthy converts a value to its boolean interpretation. The word forms
// "false" and "none", the empty string and "0" all read as false.
func Truthy(value interface{}) bool {
	if IsNone(value) {
		return false
	}
	switch strings.ToLower(Stringify(value)) {
	case "false", "none", "", "0", strings.ToLower(Marker):
		return false
	}
	if n, ok := toFloat(value); ok {
		return n != 0
	}
	return true
}

func filterInt(value interface{}, _ string, _ bool) (interface{}, error) {
	if IsNone(value) {
		return 0, nil
	}
	switch t := value.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, NewErrorWithCause(ErrorKindFilter, "int filter got a non-numeric value", t, err)
		}
		return n, nil
	default:
		return nil, NewError(ErrorKindFilter, "int filter got a non-numeric value", Stringify(value))
	}
}

func filterStr(value interface{}, _ string, _ bool) (interface{}, error) {
	return `"` + Stringify(value) + `"`, nil
}

// filterDateformat formats a timestamp with a strftime pattern. A string
// value is revived from the ctime spelling first; anything that cannot be
// interpreted as a timestamp passes through unchanged.
func filterDateformat(value interface{}, data string, hasData bool) (interface{}, error) {
	if !hasData {
		return value, nil
	}
	switch t := value.(type) {
	case time.Time:
		return strftime(t, data), nil
	case string:
		parsed, err := time.Parse(ctimeLayout, t)
		if err != nil {
			return t, nil
		}
		return strftime(parsed, data), nil
	default:
		return value, nil
	}
}

func filterUsebr(value interface{}, _ string, _ bool) (interface{}, error) {
	return strings.ReplaceAll(Stringify(value), "\n", "<br />"), nil
}

func filterHTML(value interface{}, _ string, _ bool) (interface{}, error) {
	return html.UnescapeString(Stringify(value)), nil
}

// filterPluralForm picks the noun form agreeing with a number and prefixes
// the number itself. The argument is a JSON array of the three forms: for
// one, for a few, for many.
func filterPluralForm(value interface{}, data string, hasData bool) (interface{}, error) {
	if !hasData {
		return nil, NewError(ErrorKindFilter, "plural_form filter needs its word forms", Stringify(value))
	}
	var words []string
	if err := json.Unmarshal([]byte(data), &words); err != nil || len(words) < 3 {
		return nil, NewError(ErrorKindFilter, "plural_form filter needs three word forms", data)
	}

	n := 0
	if f, ok := toFloat(value); ok {
		n = int(f)
	} else if s, ok := value.(string); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			n = parsed
		}
	}

	num := n % 100
	if num > 19 {
		num %= 10
	}
	var word string
	switch {
	case num == 1:
		word = words[0]
	case num == 2 || num == 3 || num == 4:
		word = words[1]
	default:
		word = words[2]
	}
	return fmt.Sprintf("%d %s", n, word), nil
}

// strftimeVerbs maps the supported strftime verbs to layout fragments.
var strftimeVerbs = map[byte]string{
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'm': "01",
	'p': "PM",
	'Y': "2006",
	'y': "06",
}

// strftime formats t with a strftime-style pattern, translating each verb
// to the reference-time layout. Unknown verbs pass through literally.
func strftime(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		i++
		switch verb := pattern[i]; verb {
		case '%':
			b.WriteByte('%')
		case 'i':
			b.WriteString(t.Format("04"))
		default:
			layout, ok := strftimeVerbs[verb]
			if !ok {
				b.WriteByte('%')
				b.WriteByte(verb)
				continue
			}
			b.WriteString(t.Format(layout))
		}
	}
	return b.String()
}
