package runtime

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ctimeLayout is the interchange spelling for timestamps. Times inside
// containers serialize to it and strings matching it parse back.
const ctimeLayout = "Mon Jan _2 15:04:05 2006"

var ctimePattern = regexp.MustCompile(`\w\w\w[\s]+\w\w\w[\s]+\d[\d]*[\s]+\d\d:\d\d:\d\d[\s]+\d\d\d\d`)

// Stringify converts a value to its display form. Containers serialize to
// JSON with timestamps in ctime form, the sentinel prints its marker and
// scalars print naturally.
func Stringify(v interface{}) string {
	if IsNone(v) {
		return Marker
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(ctimeLayout)
	case map[string]interface{}, []interface{}:
		raw, err := json.Marshal(convertTimes(v))
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// convertTimes deep-copies containers with every timestamp replaced by its
// ctime spelling, so the JSON encoder never sees a time value.
func convertTimes(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.Format(ctimeLayout)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = convertTimes(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = convertTimes(item)
		}
		return out
	case NoneValue:
		return nil
	default:
		return v
	}
}

// SafeJSON serializes a value for embedding inside a single-quoted script
// literal. Quotes are escaped against the string delimiters and newline
// escapes dropped. Literal backslashes are parked under a token first so
// the newline substitution cannot eat the second half of an escaped "\\n"
// and leave an orphaned slash behind.
func SafeJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(convertTimes(v))
	if err != nil {
		return "", err
	}
	const slashToken = "__literal_slash__"
	s := string(raw)
	s = strings.ReplaceAll(s, `\\`, slashToken)
	s = strings.ReplaceAll(s, `\n`, "")
	s = strings.ReplaceAll(s, `\r`, "")
	s = strings.ReplaceAll(s, `\"`, `\\"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, slashToken, `\\\\`)
	return s, nil
}

// ParseScope decodes a JSON object fragment into a data map, reviving
// ctime-spelled strings back into timestamps.
func ParseScope(fragment string) (map[string]interface{}, error) {
	var scope map[string]interface{}
	if err := json.Unmarshal([]byte(fragment), &scope); err != nil {
		return nil, err
	}
	for k, v := range scope {
		if s, ok := v.(string); ok && ctimePattern.MatchString(s) {
			if t, err := time.Parse(ctimeLayout, s); err == nil {
				scope[k] = t
			}
		}
	}
	return scope, nil
}
