package optimize_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/interp"
	"github.com/msdscript-go/msdscript/internal/optimize"
	"github.com/msdscript-go/msdscript/internal/parser"
	"github.com/msdscript-go/msdscript/internal/value"
)

func optimizeSource(t *testing.T, source string) (h *gc.Heap, result gc.Ref) {
	t.Helper()
	h = gc.NewHeap(gc.DefaultCapacity)
	e, err := parser.Parse(h, source)
	if err != nil {
		t.Fatalf("parse(%q) failed: %v", source, err)
	}
	return h, optimize.Optimize(h, e)
}

func TestConstantFoldsArithmetic(t *testing.T) {
	h, result := optimizeSource(t, "2 + 3")
	want := h.Alloc(ast.Num{Value: 5})
	if !ast.Equals(h, result, want) {
		t.Fatalf("optimize(2 + 3) = %s, want 5", ast.String(h, result))
	}
}

func TestConstantFoldsComparison(t *testing.T) {
	h, result := optimizeSource(t, "5 == 3")
	want := h.Alloc(ast.Bool{Value: false})
	if !ast.Equals(h, result, want) {
		t.Fatalf("optimize(5 == 3) = %s, want _false", ast.String(h, result))
	}
}

func TestIfWithConstantTestPicksBranch(t *testing.T) {
	h, result := optimizeSource(t, "_if 5 == 3 _then 2 _else 89")
	want := h.Alloc(ast.Num{Value: 89})
	if !ast.Equals(h, result, want) {
		t.Fatalf("optimize(_if 5==3 ...) = %s, want 89", ast.String(h, result))
	}
}

// Concrete scenario, spec.md §8: optimizing under a free variable still
// folds everything that does not depend on it.
func TestOptimizeUnderFreeVariable(t *testing.T) {
	h, result := optimizeSource(t, "_let x = 5 _in _let y = z + 2 _in x + y + (2 * 3)")

	e, err := parser.Parse(h, "_let y = z + 2 _in 5 + y + 6")
	if err != nil {
		t.Fatalf("parse(want) failed: %v", err)
	}
	if !ast.Equals(h, result, e) {
		t.Fatalf("optimize(...) = %s, want %s", ast.String(h, result), ast.String(h, e))
	}
}

// Optimizer soundness, spec.md §8: interp(e.optimize()) == interp(e).
func TestOptimizerSoundness(t *testing.T) {
	cases := []string{
		"2 + 3",
		"5 == 3",
		"_if 5 == 3 _then 2 _else 89",
		"_let x = 5 _in _let y = x _in y + y",
		"_let f = _fun (x) x + 1 _in f(10)",
		"_let fact = _fun(f) _fun(x) _if x == 1 _then 1 _else x * f(f)(x + -1) _in fact(fact)(5)",
	}
	for _, source := range cases {
		h := gc.NewHeap(gc.DefaultCapacity)
		e, err := parser.Parse(h, source)
		if err != nil {
			t.Fatalf("parse(%q) failed: %v", source, err)
		}
		env := h.Alloc(environment.Empty{})
		original, origErr := interp.Eval(h, e, env)

		optimized := optimize.Optimize(h, e)
		env2 := h.Alloc(environment.Empty{})
		optVal, optErr := interp.Eval(h, optimized, env2)

		if (origErr == nil) != (optErr == nil) {
			t.Fatalf("%q: original err=%v, optimized err=%v", source, origErr, optErr)
		}
		if origErr == nil {
			got := value.ToString(h.Get(optVal).(value.Value))
			want := value.ToString(h.Get(original).(value.Value))
			if got != want {
				t.Errorf("%q: interp(optimize(e))=%q, interp(e)=%q", source, got, want)
			}
		}
	}
}

func TestOptimizeSnapshotPrintedForm(t *testing.T) {
	sources := []string{
		"_let x = 5 _in _let y = z + 2 _in x + y + (2 * 3)",
		"_let fact = _fun(f) _fun(x) _if x == 1 _then 1 _else x * f(f)(x + -1) _in fact(fact)(5)",
	}
	for _, source := range sources {
		h, result := optimizeSource(t, source)
		snaps.MatchSnapshot(t, source, ast.String(h, result))
	}
}
