package template

import (
	"strings"
	"testing"
)

func TestLoadStripsCommentsAndResources(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/page.html": `<!-- header comment -->
<style>.page { color: red; }</style>
<script>var ready = true;</script>
<p><var>title</var></p>`,
	})
	d, err := Load("views.page", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(d.Content, "header comment") {
		t.Errorf("comment survived composition: %q", d.Content)
	}
	if d.Style != ".page { color: red; }" {
		t.Errorf("style block = %q", d.Style)
	}
	if d.Script != "var ready = true;" {
		t.Errorf("script block = %q", d.Script)
	}
	if d.Content != "<p><var>title</var></p>" {
		t.Errorf("content = %q", d.Content)
	}
	if d.Name != "views.page" {
		t.Errorf("logical name = %q", d.Name)
	}
}

func TestLoadNotFound(t *testing.T) {
	loader := NewMapLoader(map[string]string{})
	_, err := Load("views.missing", loader)
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if !IsDocumentNotFound(err) {
		t.Errorf("expected DocumentNotFoundError, got %T", err)
	}
}

func TestRebaseOverridesParentBreakpoint(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/base.html":  `<html><breakpoint name="body">parent body</breakpoint></html>`,
		"views/child.html": `<rebase>views.base</rebase><breakpoint name="body">child body</breakpoint>`,
	})
	d, err := Load("views.child", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Content, "child body") {
		t.Errorf("override not applied: %q", d.Content)
	}
	if strings.Contains(d.Content, "parent body") {
		t.Errorf("parent slot content survived: %q", d.Content)
	}
	if strings.Contains(d.Content, "<rebase") {
		t.Errorf("rebase directive survived: %q", d.Content)
	}
}

func TestRebaseKeepsUnoverriddenSlots(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/base.html":  `<breakpoint name="head">default head</breakpoint><breakpoint name="body">default body</breakpoint>`,
		"views/child.html": `<rebase>views.base</rebase><breakpoint name="body">child body</breakpoint>`,
	})
	d, err := Load("views.child", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Content, "default head") {
		t.Errorf("unoverridden slot lost: %q", d.Content)
	}
	if !strings.Contains(d.Content, "child body") {
		t.Errorf("override lost: %q", d.Content)
	}
}

func TestRebaseChain(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/root.html":   `<html><breakpoint name="main">root main</breakpoint></html>`,
		"views/middle.html": `<rebase>views.root</rebase><breakpoint name="main"><breakpoint name="inner">middle inner</breakpoint></breakpoint>`,
		"views/leaf.html":   `<rebase>views.middle</rebase><breakpoint name="inner">leaf inner</breakpoint>`,
	})
	d, err := Load("views.leaf", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Content, "leaf inner") {
		t.Errorf("nested slot override across the chain lost: %q", d.Content)
	}
	if !strings.Contains(d.Content, "<html>") {
		t.Errorf("root frame lost: %q", d.Content)
	}
}

func TestIncludeSplicesComposedBody(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/page.html":   `<div><breakpoint include="views.widget"></breakpoint></div>`,
		"views/widget.html": `<span><var>w</var></span>`,
	})
	d, err := Load("views.page", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div><span><var>w</var></span></div>`
	if d.Content != want {
		t.Errorf("content = %q, want %q", d.Content, want)
	}
}

func TestIncludeRepeatedTarget(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/page.html":   `<breakpoint include="views.widget"></breakpoint><breakpoint include="views.widget"></breakpoint>`,
		"views/widget.html": `<b>w</b>`,
	})
	d, err := Load("views.page", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(d.Content, "<b>w</b>"); got != 2 {
		t.Errorf("expected the widget twice, found %d in %q", got, d.Content)
	}
}

func TestIncludeMissingTargetFails(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/page.html": `<breakpoint include="views.gone"></breakpoint>`,
	})
	_, err := Load("views.page", loader)
	if err == nil {
		t.Fatal("expected error for unresolved include")
	}
	if !IsDocumentNotFound(err) {
		t.Errorf("expected DocumentNotFoundError, got %T", err)
	}
}

func TestIncludeWithBodyIsDeferred(t *testing.T) {
	loader := NewMapLoader(map[string]string{
		"views/page.html": `<breakpoint include="widget">{"a": 1}</breakpoint>`,
	})
	d, err := Load("views.page", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Content, `{"a": 1}`) {
		t.Errorf("scope-bearing include should survive to render time: %q", d.Content)
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"views.index", "views/index.html"},
		{"views/index.html", "views/index.html"},
		{"widget", "widget.html"},
	}
	for _, tt := range tests {
		if got := ResolvePath(tt.name); got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLogicalName(t *testing.T) {
	if got := LogicalName("views/index.html"); got != "views.index" {
		t.Errorf("LogicalName = %q", got)
	}
}

func TestFileSystemLoaderTriedPaths(t *testing.T) {
	loader := NewFileSystemLoader(t.TempDir())
	_, err := loader.Load("views/none.html")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "tried") {
		t.Errorf("error should list tried paths: %v", err)
	}
}
