package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suitlang/gosuit/lexer"
	"github.com/suitlang/gosuit/nodes"
)

func TestParsePathNotationsAgree(t *testing.T) {
	tests := []struct {
		dotted    string
		bracketed string
	}{
		{"user.name", `user["name"]`},
		{"a.b.c", `a["b"]["c"]`},
		{"user.name", `user.name`},
	}
	for _, tt := range tests {
		a, b := ParsePath(tt.dotted), ParsePath(tt.bracketed)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%q and %q parse differently (-dotted +bracketed):\n%s", tt.dotted, tt.bracketed, diff)
		}
	}
}

func TestParsePathBareSegments(t *testing.T) {
	path := ParsePath(`items[v]["id"]`)
	want := nodes.Path{
		{Text: "items", Quoted: true},
		{Text: "v"},
		{Text: "id", Quoted: true},
	}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestParsePathToleratesStrayDots(t *testing.T) {
	path := ParsePath("a..b.")
	want := nodes.Path{
		{Text: "a", Quoted: true},
		{Text: "b", Quoted: true},
	}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func parseOne(t *testing.T, text string) nodes.Node {
	t.Helper()
	part, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	if len(part.Nodes) != 1 {
		t.Fatalf("expected a single node, got %d in %q", len(part.Nodes), text)
	}
	return part.Nodes[0]
}

func TestParseVariable(t *testing.T) {
	v, ok := parseOne(t, `<var d="guest" filter="length">user.name</var>`).(*nodes.Variable)
	if !ok {
		t.Fatal("expected a Variable node")
	}
	if v.Path.Subscript() != `["user"]["name"]` {
		t.Errorf("unexpected path %q", v.Path.Subscript())
	}
	if !v.HasDefault || v.Default != "guest" {
		t.Errorf("default not captured: %q, %v", v.Default, v.HasDefault)
	}
	if len(v.Filters) != 1 || v.Filters[0].Name != "length" {
		t.Errorf("unexpected filters %+v", v.Filters)
	}
}

func TestParseFilterOrderAndData(t *testing.T) {
	v := parseOne(t, `<var filter="in, bool" in-data='["a","b"]'>x</var>`).(*nodes.Variable)
	if len(v.Filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(v.Filters))
	}
	if v.Filters[0].Name != "in" || v.Filters[1].Name != "bool" {
		t.Errorf("filter order lost: %+v", v.Filters)
	}
	if !v.Filters[0].HasData || v.Filters[0].Data != `["a","b"]` {
		t.Errorf("filter argument lost: %+v", v.Filters[0])
	}
	if v.Filters[1].HasData {
		t.Errorf("bool filter should carry no argument: %+v", v.Filters[1])
	}
}

func TestParseHeaderQuoteAware(t *testing.T) {
	c := parseOne(t, `<if condition="<var>n</var> > 5">yes</if>`).(*nodes.Condition)
	if c.Condition == nil {
		t.Fatal("condition attribute not captured")
	}
	if !strings.Contains(c.Condition.Text, "> 5") {
		t.Errorf("quoted > split the header: %q", c.Condition.Text)
	}
	if len(c.Condition.Nodes) != 1 {
		t.Errorf("embedded tag in condition not tokenized: %+v", c.Condition)
	}
}

func TestParseConditionChildren(t *testing.T) {
	c := parseOne(t, `<if><condition>x == 1</condition><true>yes</true><false>no</false></if>`).(*nodes.Condition)
	if c.Condition == nil || !strings.Contains(c.Condition.Text, "x == 1") {
		t.Fatalf("condition child not bound: %+v", c.Condition)
	}
	if c.True.Text != "yes" {
		t.Errorf("true branch = %q", c.True.Text)
	}
	if c.False.Text != "no" {
		t.Errorf("false branch = %q", c.False.Text)
	}
}

func TestParseConditionDefaultsBodyToTrue(t *testing.T) {
	c := parseOne(t, `<if condition="true">shown</if>`).(*nodes.Condition)
	if c.True.Text != "shown" {
		t.Errorf("true branch should default to the body, got %q", c.True.Text)
	}
	if !c.False.Empty() {
		t.Errorf("false branch should default to empty, got %+v", c.False)
	}
}

func TestParseConditionMissing(t *testing.T) {
	c := parseOne(t, `<if>body only</if>`).(*nodes.Condition)
	if c.Condition != nil {
		t.Errorf("expected nil condition, got %+v", c.Condition)
	}
}

func TestParseListTextReference(t *testing.T) {
	l := parseOne(t, `<list for="v" in="items"><p><var>v</var></p></list>`).(*nodes.List)
	if l.Key != "v" || l.IterableName != "items" {
		t.Fatalf("loop head misread: key=%q iterable=%q", l.Key, l.IterableName)
	}
	if l.DictIteration {
		t.Error("single loop variable flagged as dict iteration")
	}
	body := l.LoopBody
	if len(body.Nodes) != 1 {
		t.Fatalf("expected one node in the loop body, got %d", len(body.Nodes))
	}
	v, ok := body.Nodes[0].(*nodes.Variable)
	if !ok {
		t.Fatalf("expected Variable, got %T", body.Nodes[0])
	}
	if v.Path.Subscript() != `["items"][v]` {
		t.Errorf("loop reference not rewritten to an index read: %q", v.Path.Subscript())
	}
}

func TestParseListDottedReference(t *testing.T) {
	l := parseOne(t, `<list for="v" in="users"><var>v.name</var></list>`).(*nodes.List)
	v := l.LoopBody.Nodes[0].(*nodes.Variable)
	if v.Path.Subscript() != `["users"][v]["name"]` {
		t.Errorf("dotted loop reference rewritten to %q", v.Path.Subscript())
	}
}

func TestParseListBracketReferenceBecomesIterationVar(t *testing.T) {
	l := parseOne(t, `<list for="v" in="users"><var>v["name"]</var></list>`).(*nodes.List)
	iv, ok := l.LoopBody.Nodes[0].(*nodes.IterationVariable)
	if !ok {
		t.Fatalf("expected IterationVariable, got %T", l.LoopBody.Nodes[0])
	}
	if iv.Path.Subscript() != `["users"][v]["name"]` {
		t.Errorf("iteration variable path = %q", iv.Path.Subscript())
	}
}

func TestParseListCounterReference(t *testing.T) {
	l := parseOne(t, `<list for="v" in="items"><var>i</var>: <var>v</var></list>`).(*nodes.List)
	if len(l.LoopBody.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(l.LoopBody.Nodes))
	}
	ik, ok := l.LoopBody.Nodes[0].(*nodes.IterationKey)
	if !ok {
		t.Fatalf("expected IterationKey, got %T", l.LoopBody.Nodes[0])
	}
	if ik.Expr() != "v + 1" {
		t.Errorf("counter reference expr = %q", ik.Expr())
	}
}

func TestParseListDictIteration(t *testing.T) {
	l := parseOne(t, `<list for="k, val" in="config"><var>k</var>=<var>val</var></list>`).(*nodes.List)
	if !l.DictIteration || l.Key != "k" || l.Value != "val" {
		t.Fatalf("dict head misread: %+v", l)
	}
	ik, ok := l.LoopBody.Nodes[0].(*nodes.IterationKey)
	if !ok {
		t.Fatalf("expected IterationKey for the key reference, got %T", l.LoopBody.Nodes[0])
	}
	if ik.KeyName != "k" || ik.Mod != "" {
		t.Errorf("key reference misread: %+v", ik)
	}
	v, ok := l.LoopBody.Nodes[1].(*nodes.Variable)
	if !ok {
		t.Fatalf("expected Variable for the value reference, got %T", l.LoopBody.Nodes[1])
	}
	if v.Path.Subscript() != `["config"][k]` {
		t.Errorf("value reference path = %q", v.Path.Subscript())
	}
}

func TestParseListNestedInAttribute(t *testing.T) {
	l := parseOne(t, `<list for="row" in="table"><list for="cell" in="row.cells"><var>cell</var></list></list>`).(*nodes.List)
	inner, ok := l.LoopBody.Nodes[0].(*nodes.List)
	if !ok {
		t.Fatalf("expected nested List, got %T", l.LoopBody.Nodes[0])
	}
	if inner.IterableName != "table[row].cells" {
		t.Errorf("nested in attribute not rewritten: %q", inner.IterableName)
	}
}

func TestParseListMissingAttributes(t *testing.T) {
	for _, src := range []string{
		`<list in="items">x</list>`,
		`<list for="v">x</list>`,
	} {
		_, err := Parse(src)
		if err == nil {
			t.Errorf("expected error for %q", src)
		} else if !lexer.IsParseError(err) {
			t.Errorf("expected ParseError for %q, got %T", src, err)
		}
	}
}

func TestParseBreakpoint(t *testing.T) {
	bp := parseOne(t, `<breakpoint name="sidebar">content</breakpoint>`).(*nodes.Breakpoint)
	if bp.Slot != "sidebar" || bp.IsInclude {
		t.Errorf("slot breakpoint misread: %+v", bp)
	}
	if bp.Content.Text != "content" {
		t.Errorf("content = %q", bp.Content.Text)
	}

	inc := parseOne(t, `<breakpoint include="views.widget">{"a": 1}</breakpoint>`).(*nodes.Breakpoint)
	if !inc.IsInclude || inc.Include != "views.widget" {
		t.Errorf("include breakpoint misread: %+v", inc)
	}
}

func TestParseAttrDuplicatesOverwrite(t *testing.T) {
	v := parseOne(t, `<var d="first" d="second">x</var>`).(*nodes.Variable)
	if v.Default != "second" {
		t.Errorf("later duplicate should win, got %q", v.Default)
	}
}

func TestParsePassthroughTag(t *testing.T) {
	part, err := Parse(`<condition>standalone</condition>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := part.Nodes[0]
	if n.Kind() != nodes.KindPassthrough || n.Name() != "condition" {
		t.Errorf("expected passthrough condition node, got kind=%v name=%q", n.Kind(), n.Name())
	}
}
