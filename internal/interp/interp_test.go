package interp_test

import (
	"testing"

	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/interp"
	"github.com/msdscript-go/msdscript/internal/parser"
	"github.com/msdscript-go/msdscript/internal/value"
)

func evalSource(t *testing.T, source string) string {
	t.Helper()
	h := gc.NewHeap(gc.DefaultCapacity)
	e, err := parser.Parse(h, source)
	if err != nil {
		t.Fatalf("parse(%q) failed: %v", source, err)
	}
	env := h.Alloc(environment.Empty{})
	v, err := interp.Eval(h, e, env)
	if err != nil {
		t.Fatalf("eval(%q) failed: %v", source, err)
	}
	return value.ToString(h.Get(v).(value.Value))
}

// Concrete end-to-end scenarios, spec.md §8.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"_let x = (_let y = 7 _in y) _in x", "7"},
		{"_let x = 5 _in _let y = x _in y + y", "10"},
		{"_if 5 == 3 _then 2 _else 89", "89"},
		{"-8 + 3", "-5"},
		{"_let f = _fun (x) x + 1 _in f(10)", "11"},
		{"_let fact = _fun(f) _fun(x) _if x == 1 _then 1 _else x * f(f)(x + -1) _in fact(fact)(5)", "120"},
	}
	for _, c := range cases {
		if got := evalSource(t, c.source); got != c.want {
			t.Errorf("eval(%q) = %q, want %q", c.source, got, c.want)
		}
	}
}

func TestFreeVariableFails(t *testing.T) {
	h := gc.NewHeap(gc.DefaultCapacity)
	e, err := parser.Parse(h, "x + 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	env := h.Alloc(environment.Empty{})
	if _, err := interp.Eval(h, e, env); err == nil {
		t.Fatalf("expected free variable error")
	}
}

func TestTypeMismatchErrors(t *testing.T) {
	cases := []string{
		"_true + 1",
		"1 * _false",
		"_if 1 _then 2 _else 3",
		"1(2)",
	}
	for _, src := range cases {
		h := gc.NewHeap(gc.DefaultCapacity)
		e, err := parser.Parse(h, src)
		if err != nil {
			t.Fatalf("parse(%q) failed: %v", src, err)
		}
		env := h.Alloc(environment.Empty{})
		if _, err := interp.Eval(h, e, env); err == nil {
			t.Errorf("eval(%q) succeeded, want type-mismatch error", src)
		}
	}
}
