package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder is the positional marker format substituted for each
// extracted tag occurrence.
const Placeholder = "{{ph:%d}}"

// PlaceholderPattern matches the positional markers left by Split.
var PlaceholderPattern = regexp.MustCompile(`\{\{ph:(\d+)\}\}`)

var (
	afterGTPattern  = regexp.MustCompile(`>\s\s+`)
	beforeLTPattern = regexp.MustCompile(`\s\s+<`)
	spaceRunPattern = regexp.MustCompile(`\s\s+`)
)

// Collapse folds runs of whitespace down to single spaces and tightens
// whitespace against tag brackets. All template text passes through this
// before tokenization so span matching never depends on formatting.
func Collapse(s string) string {
	s = strings.NewReplacer("\t", "  ", "\n", "  ", "\r", "  ").Replace(s)
	s = afterGTPattern.ReplaceAllString(s, ">")
	s = beforeLTPattern.ReplaceAllString(s, "<")
	s = spaceRunPattern.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// Tokenizer extracts top-level recognized tag occurrences from text,
// replacing each with a dense 0-based placeholder. Openers and closers are
// paired through the unique suffix assigned by the TagCounter, so nesting
// of same-named tags never confuses the span match.
type Tokenizer struct {
	counter *TagCounter
	opener  *regexp.Regexp
}

// NewTokenizer creates a tokenizer for the given tag names, defaulting to
// the full recognized vocabulary.
func NewTokenizer(tags ...string) *Tokenizer {
	if len(tags) == 0 {
		tags = Tags
	}
	return &Tokenizer{
		counter: NewTagCounter(tags...),
		opener:  regexp.MustCompile(`<((?:` + strings.Join(tags, "|") + `)(?:_\d+)?)[\s>]`),
	}
}

// Split collapses and enumerates the text, then extracts every outermost
// recognized tag span in order of appearance. It returns the residual text
// with placeholders and the ordered raw occurrences (still enumerated, so
// nested content can be re-tokenized without recounting). Placeholder
// indices correspond 1:1 to the returned span order.
func (t *Tokenizer) Split(text string) (string, []string, error) {
	counted, err := t.counter.Count(Collapse(text))
	if err != nil {
		return "", nil, err
	}

	var out strings.Builder
	var spans []string
	pos := 0
	for pos < len(counted) {
		loc := t.opener.FindStringSubmatchIndex(counted[pos:])
		if loc == nil {
			out.WriteString(counted[pos:])
			break
		}
		start := pos + loc[0]
		name := counted[pos+loc[2] : pos+loc[3]]
		closer := "</" + name + ">"
		rel := strings.Index(counted[start:], closer)
		if rel < 0 {
			// Unpaired opener: leave it as plain text and move on.
			out.WriteString(counted[pos : pos+loc[1]])
			pos += loc[1]
			continue
		}
		end := start + rel + len(closer)
		out.WriteString(counted[pos:start])
		out.WriteString(fmt.Sprintf(Placeholder, len(spans)))
		spans = append(spans, counted[start:end])
		pos = end
	}

	return t.counter.Decount(out.String()), spans, nil
}

// Counter exposes the tokenizer's tag counter.
func (t *Tokenizer) Counter() *TagCounter {
	return t.counter
}
