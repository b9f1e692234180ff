package parser

import (
	"regexp"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

var (
	innerSpacePattern = regexp.MustCompile(`\s\s+`)
	attrPattern       = regexp.MustCompile(`\s([\w-]+)=("[^"]*"|'[^']*')`)
)

// parseBase extracts the common fields of one occurrence: the quote-aware
// header, the tag name with its enumeration suffix stripped, the ordered
// attribute map and the raw body.
func parseBase(raw string) (*nodes.Tag, error) {
	s := strings.TrimSpace(innerSpacePattern.ReplaceAllString(raw, " "))

	header, err := parseHeader(s)
	if err != nil {
		return nil, err
	}

	nameToken := strings.Trim(strings.SplitN(header, " ", 2)[0], "<>")
	body := strings.ReplaceAll(s, header, "")
	body = strings.ReplaceAll(body, "</"+nameToken+">", "")

	return &nodes.Tag{
		TagName: strings.SplitN(nameToken, "_", 2)[0],
		Attrs:   parseAttrs(header),
		RawBody: strings.TrimSpace(body),
	}, nil
}

// parseHeader returns the opening part of the tag, from < to the matching
// top-level >. A > inside a single- or double-quoted attribute value never
// closes the header. The first quote kind seen in the header is the one
// tracked throughout it.
func parseHeader(s string) (string, error) {
	var b strings.Builder
	var quote byte
	q1, q2 := false, false
	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '<' && !q1 && !q2:
			depth++
		case c == '>' && !q1 && !q2:
			depth--
			if depth == 0 {
				b.WriteByte(c)
				return b.String(), nil
			}
		case c == '\'':
			if quote == 0 {
				quote = '\''
			}
			if quote == '\'' {
				q1 = !q1
			}
		case c == '"':
			if quote == 0 {
				quote = '"'
			}
			if quote == '"' {
				q2 = !q2
			}
		}
		b.WriteByte(c)
	}
	return "", lexer.NewParseError("unterminated tag header", s)
}

// parseAttrs collects name="value" and name='value' pairs from the header.
// Later duplicates overwrite earlier ones, keeping keys unique.
func parseAttrs(header string) nodes.Attrs {
	var attrs nodes.Attrs
	for _, m := range attrPattern.FindAllStringSubmatch(header, -1) {
		quoted := m[2]
		attrs = attrs.Set(m[1], quoted[1:len(quoted)-1])
	}
	return attrs
}
