package lexer

import (
	"strings"
	"testing"
)

func TestCountAssignsSequentialIds(t *testing.T) {
	c := NewTagCounter()
	out, err := c.Count(`<var>a</var><var>b</var>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<var_0>a</var_0><var_1>b</var_1>`
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestCountDisambiguatesNesting(t *testing.T) {
	c := NewTagCounter()
	out, err := c.Count(`<list for="v" in="xs"><var>v</var></list>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<list_0 ") {
		t.Errorf("outer tag not enumerated: %q", out)
	}
	if !strings.Contains(out, "<var_1>v</var_1>") {
		t.Errorf("inner tag not paired with its own id: %q", out)
	}
	if !strings.HasSuffix(out, "</list_0>") {
		t.Errorf("outer closer did not take the opener's id: %q", out)
	}
}

func TestCountSameNameNesting(t *testing.T) {
	c := NewTagCounter()
	out, err := c.Count(`<if condition="a"><if condition="b">x</if></if>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<if_1 condition="b">x</if_1>`) {
		t.Errorf("inner same-named pair mismatched: %q", out)
	}
	if !strings.HasSuffix(out, "</if_0>") {
		t.Errorf("outer same-named pair mismatched: %q", out)
	}
}

func TestCountMismatchedCloser(t *testing.T) {
	c := NewTagCounter()
	_, err := c.Count(`text</var>`)
	if err == nil {
		t.Fatal("expected error for closer without opener")
	}
	if !IsParseError(err) {
		t.Errorf("expected ParseError, got %T", err)
	}
}

func TestCountLeavesUnknownTagsAlone(t *testing.T) {
	c := NewTagCounter()
	out, err := c.Count(`<div class="x"><var>a</var></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<div class="x">`) || !strings.Contains(out, `</div>`) {
		t.Errorf("markup outside the vocabulary was touched: %q", out)
	}
}

func TestDecountRoundTrip(t *testing.T) {
	c := NewTagCounter()
	tests := []string{
		`<var>a</var>`,
		`<list for="v" in="xs"><var>v</var></list>`,
		`<if condition="a"><true>y</true><false>n</false></if>`,
		`plain text without tags`,
	}
	for _, src := range tests {
		counted, err := c.Count(src)
		if err != nil {
			t.Fatalf("Count(%q): %v", src, err)
		}
		if got := c.Decount(counted); got != src {
			t.Errorf("round trip of %q produced %q", src, got)
		}
	}
}

func TestCountIdempotentOverOwnOutput(t *testing.T) {
	c := NewTagCounter()
	counted, err := c.Count(`<var>a</var>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := c.Count(counted)
	if err != nil {
		t.Fatalf("unexpected error on recount: %v", err)
	}
	if again != counted {
		t.Errorf("recount changed %q to %q", counted, again)
	}
}
