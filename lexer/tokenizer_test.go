package lexer

import "testing"

func TestCollapse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a  b", "a b"},
		{"a\n\tb", "a b"},
		{">   text", ">text"},
		{"text   <", "text<"},
		{"  padded  ", "padded"},
		{"<p>\n  <var>a</var>\n</p>", "<p><var>a</var></p>"},
	}
	for _, tt := range tests {
		if got := Collapse(tt.in); got != tt.want {
			t.Errorf("Collapse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitExtractsTopLevelSpans(t *testing.T) {
	tok := NewTokenizer()
	residual, spans, err := tok.Split(`before <var>a</var> middle <var>b</var> after`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if residual != "before {{ph:0}} middle {{ph:1}} after" {
		t.Errorf("unexpected residual %q", residual)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0] != "<var_0>a</var_0>" || spans[1] != "<var_1>b</var_1>" {
		t.Errorf("unexpected spans %q", spans)
	}
}

func TestSplitKeepsNestingInsideOneSpan(t *testing.T) {
	tok := NewTokenizer()
	residual, spans, err := tok.Split(`<if condition="x"><var>a</var></if>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if residual != "{{ph:0}}" {
		t.Errorf("unexpected residual %q", residual)
	}
	if len(spans) != 1 {
		t.Fatalf("expected a single outer span, got %d: %q", len(spans), spans)
	}
}

func TestSplitPlainText(t *testing.T) {
	tok := NewTokenizer()
	residual, spans, err := tok.Split("no tags here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if residual != "no tags here" || len(spans) != 0 {
		t.Errorf("plain text changed: %q, %d spans", residual, len(spans))
	}
}

func TestSplitSkipsUnpairedOpener(t *testing.T) {
	tok := NewTokenizer()
	residual, spans, err := tok.Split(`<breakpoint name="slot"> text`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("unpaired opener produced a span: %q", spans)
	}
	if residual == "" {
		t.Error("residual text lost")
	}
}

func TestSplitScopedVocabulary(t *testing.T) {
	tok := NewTokenizer("breakpoint")
	residual, spans, err := tok.Split(`<breakpoint name="a"><var>x</var></breakpoint>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 breakpoint span, got %d", len(spans))
	}
	if residual != "{{ph:0}}" {
		t.Errorf("unexpected residual %q", residual)
	}
}
