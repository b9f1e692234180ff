package parser

import (
	"regexp"
	"strings"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

// parseList reads the loop head and rewrites the body so that every bare
// reference to the loop variables indexes the iterable directly. The
// rewritten body needs no runtime binding environment beyond the loop key.
func parseList(base *nodes.Tag) (*nodes.List, error) {
	l := &nodes.List{Tag: *base}

	forAttr, ok := base.Attrs.Lookup("for")
	if !ok || strings.TrimSpace(forAttr) == "" {
		return nil, lexer.NewParseError("list tag is missing its 'for' attribute", base.RawBody)
	}
	inAttr, ok := base.Attrs.Lookup("in")
	if !ok || strings.TrimSpace(inAttr) == "" {
		return nil, lexer.NewParseError("list tag is missing its 'in' attribute", base.RawBody)
	}

	if strings.Contains(forAttr, ",") {
		pair := strings.SplitN(strings.ReplaceAll(forAttr, " ", ""), ",", 2)
		if pair[0] == "" || pair[1] == "" {
			return nil, lexer.NewParseError("malformed key,value pair in 'for' attribute", forAttr)
		}
		l.DictIteration = true
		l.Key, l.Value = pair[0], pair[1]
	} else {
		l.Key = strings.TrimSpace(forAttr)
		l.Value = l.Key
	}

	var iterableTag string
	if strings.HasPrefix(inAttr, "<var") {
		iterableTag = inAttr
		l.IterableName = ""
	} else {
		iterableTag = "<var>" + inAttr + "</var>"
		l.IterableName = inAttr
	}
	node, err := ParseTag(iterableTag)
	if err != nil {
		return nil, err
	}
	iterable, ok := node.(*nodes.Variable)
	if !ok {
		return nil, lexer.NewParseError("malformed 'in' attribute", inAttr)
	}
	l.Iterable = iterable
	if l.IterableName == "" {
		l.IterableName = iterable.RawBody
	}

	body, err := Parse(rewriteLoopBody(base.RawBody, l))
	if err != nil {
		return nil, err
	}
	l.LoopBody = body
	return l, nil
}

// rewriteLoopBody performs the textual substitutions, in order: nested in=
// attributes iterating the loop value, plain text references, the literal
// index placeholder, bracket-path value references, and (for key,value
// destructuring) key references. Occurrence pairs are matched through their
// enumeration suffixes so differently nested same-named tags stay apart.
func rewriteLoopBody(body string, l *nodes.List) string {
	indexed := l.IterableName + "[" + l.Key + "]"
	qval := regexp.QuoteMeta(l.Value)

	nestedIn := regexp.MustCompile(`\sin=["']` + qval + `(.*?)["']`)
	body = nestedIn.ReplaceAllStringFunc(body, func(m string) string {
		rest := nestedIn.FindStringSubmatch(m)[1]
		return " in='" + indexed + rest + "'"
	})

	textRef := regexp.MustCompile(`>` + qval + `(\..+?)?<`)
	body = textRef.ReplaceAllStringFunc(body, func(m string) string {
		rest := textRef.FindStringSubmatch(m)[1]
		return ">" + indexed + rest + "<"
	})

	counterRef := regexp.MustCompile(`<var(_\d+)?>i</var(_\d+)?>`)
	body = replacePaired(body, counterRef, 1, 2, func([]string) string {
		return "<iterationkey type='key' mod=' + 1' name='" + l.Value + "'></iterationkey>"
	})

	valueRef := regexp.MustCompile(`<var(_\d+)?([^>]*)>` + qval + `([.\[][^<]+)?</var(_\d+)?>`)
	body = replacePaired(body, valueRef, 1, 4, func(g []string) string {
		return "<iterationvar type='value' in='" + l.IterableName + "' name='" + l.Key +
			"' path='" + g[3] + "'" + g[2] + "></iterationvar>"
	})

	if l.DictIteration {
		keyRef := regexp.MustCompile(`<var(_\d+)?>` + regexp.QuoteMeta(l.Key) + `</var(_\d+)?>`)
		body = replacePaired(body, keyRef, 1, 2, func([]string) string {
			return "<iterationkey type='key' name='" + l.Key + "'></iterationkey>"
		})
	}
	return body
}

// replacePaired applies repl to every match of re whose two submatch
// groups ga and gb agree, leaving mismatched occurrences untouched.
func replacePaired(body string, re *regexp.Regexp, ga, gb int, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(body, -1)
	if matches == nil {
		return body
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		groups := make([]string, re.NumSubexp()+1)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = body[m[2*i]:m[2*i+1]]
			}
		}
		if groups[ga] != groups[gb] {
			continue
		}
		b.WriteString(body[last:m[0]])
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String()
}
