package parser

import (
	"strings"

	"github.com/suitlang/gosuit/nodes"
)

// ParsePath normalizes a variable access written in dot notation, bracket
// notation or any mix of the two into one canonical ordered key sequence.
// Dot segments and quoted bracket contents become literal keys; unquoted
// bracket contents stay bare for render-time resolution. Stray or doubled
// dots are tolerated.
func ParsePath(s string) nodes.Path {
	s = strings.TrimSpace(s)

	var path nodes.Path
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			path = append(path, nodes.Key{Text: cur.String(), Quoted: true})
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.':
			flush()
		case '[':
			flush()
			inner := s[i+1:]
			if end := strings.IndexByte(inner, ']'); end >= 0 {
				inner = inner[:end]
				i += end + 1
			} else {
				i = len(s)
			}
			inner = strings.TrimSpace(inner)
			if quoted, ok := unquote(inner); ok {
				path = append(path, nodes.Key{Text: quoted, Quoted: true})
			} else if inner != "" {
				path = append(path, nodes.Key{Text: inner})
			}
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return path
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1], true
	}
	return "", false
}
