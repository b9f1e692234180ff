package runtime

import (
	"strconv"

	"github.com/suitlang/gosuit/nodes"
)

// Resolve walks a canonical path against the context. Every failure mode
// short-circuits to the none sentinel: a missing key, an index out of
// range, a subscript into a scalar. Resolution itself never errors; the
// caller decides between the default expression and the sentinel.
func Resolve(c *Context, path nodes.Path) interface{} {
	var current interface{} = c.data
	for _, key := range path {
		if IsNone(current) {
			return None
		}
		current = step(current, resolveKey(c, key))
	}
	if current == nil {
		return None
	}
	return current
}

// resolveKey turns one path segment into a concrete subscript. Quoted
// segments are literal keys. Bare segments resolve against the loop
// bindings first; failing that, a numeric spelling becomes an index and
// anything else is used as a literal key.
func resolveKey(c *Context, k nodes.Key) interface{} {
	if k.Quoted {
		return k.Text
	}
	if v, ok := c.Local(k.Text); ok {
		return v
	}
	if n, err := strconv.Atoi(k.Text); err == nil {
		return n
	}
	return k.Text
}

// step subscripts one container level, converting between index and key
// forms where the container demands it.
func step(container, key interface{}) interface{} {
	switch c := container.(type) {
	case map[string]interface{}:
		name, ok := key.(string)
		if !ok {
			if n, isInt := key.(int); isInt {
				name = strconv.Itoa(n)
			} else {
				return None
			}
		}
		v, ok := c[name]
		if !ok {
			return None
		}
		return v
	case []interface{}:
		n, ok := key.(int)
		if !ok {
			name, isStr := key.(string)
			if !isStr {
				return None
			}
			parsed, err := strconv.Atoi(name)
			if err != nil {
				return None
			}
			n = parsed
		}
		if n < 0 || n >= len(c) {
			return None
		}
		return c[n]
	default:
		return None
	}
}
