package runtime

import (
	"testing"

	"github.com/suitlang/gosuit/parser"
)

func TestResolveNestedMaps(t *testing.T) {
	c := NewContext(map[string]interface{}{
		"user": map[string]interface{}{"name": "Ada"},
	})
	got := Resolve(c, parser.ParsePath("user.name"))
	if got != "Ada" {
		t.Errorf("expected Ada, got %v", got)
	}
}

func TestResolveSliceIndex(t *testing.T) {
	c := NewContext(map[string]interface{}{
		"items": []interface{}{"a", "b", "c"},
	})
	if got := Resolve(c, parser.ParsePath("items[1]")); got != "b" {
		t.Errorf("expected b, got %v", got)
	}
	if got := Resolve(c, parser.ParsePath("items[9]")); !IsNone(got) {
		t.Errorf("out-of-range index should resolve to the sentinel, got %v", got)
	}
}

func TestResolveBareKeyThroughLocals(t *testing.T) {
	c := NewContext(map[string]interface{}{
		"items": []interface{}{"x", "y"},
	}).WithLocal("v", 1)
	if got := Resolve(c, parser.ParsePath("items[v]")); got != "y" {
		t.Errorf("expected y, got %v", got)
	}
}

func TestResolveBareStringLocalIntoMap(t *testing.T) {
	c := NewContext(map[string]interface{}{
		"config": map[string]interface{}{"host": "localhost"},
	}).WithLocal("k", "host")
	if got := Resolve(c, parser.ParsePath("config[k]")); got != "localhost" {
		t.Errorf("expected localhost, got %v", got)
	}
}

func TestResolveMissesAreSilent(t *testing.T) {
	c := NewContext(map[string]interface{}{"a": 1})
	for _, path := range []string{"missing", "a.b.c", "missing[0].x"} {
		if got := Resolve(c, parser.ParsePath(path)); !IsNone(got) {
			t.Errorf("Resolve(%q) = %v, want the sentinel", path, got)
		}
	}
}

func TestResolveNilValueIsNone(t *testing.T) {
	c := NewContext(map[string]interface{}{"a": nil})
	if got := Resolve(c, parser.ParsePath("a")); !IsNone(got) {
		t.Errorf("nil value should resolve to the sentinel, got %v", got)
	}
}

func TestWithLocalIsolation(t *testing.T) {
	base := NewContext(map[string]interface{}{})
	first := base.WithLocal("v", 0)
	second := base.WithLocal("v", 1)
	if v, _ := first.Local("v"); v != 0 {
		t.Errorf("sibling binding leaked: %v", v)
	}
	if v, _ := second.Local("v"); v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
	if _, ok := base.Local("v"); ok {
		t.Error("binding leaked into the parent context")
	}
}
