package ast

import (
	"testing"

	"github.com/msdscript-go/msdscript/internal/gc"
)

func TestEqualsReflexiveAndStructural(t *testing.T) {
	h := gc.NewHeap(256)
	x := h.Alloc(Var{Name: "x"})
	lhs := h.Alloc(&Add{Lhs: h.Alloc(Num{Value: 2}), Rhs: x})
	rhs := h.Alloc(&Add{Lhs: h.Alloc(Num{Value: 2}), Rhs: h.Alloc(Var{Name: "x"})})

	if !Equals(h, lhs, lhs) {
		t.Fatalf("Equals not reflexive")
	}
	if !Equals(h, lhs, rhs) {
		t.Fatalf("structurally equal trees compared unequal")
	}

	different := h.Alloc(&Add{Lhs: h.Alloc(Num{Value: 3}), Rhs: x})
	if Equals(h, lhs, different) {
		t.Fatalf("structurally different trees compared equal")
	}
}

func TestEqualsDifferentVariants(t *testing.T) {
	h := gc.NewHeap(256)
	n := h.Alloc(Num{Value: 1})
	b := h.Alloc(Bool{Value: true})
	if Equals(h, n, b) {
		t.Fatalf("Num and Bool compared equal")
	}
}

func TestSubstReplacesFreeVarOnly(t *testing.T) {
	h := gc.NewHeap(256)
	// _fun (x) x + y, subst y -> 5: only the free y is replaced.
	body := h.Alloc(&Add{Lhs: h.Alloc(Var{Name: "x"}), Rhs: h.Alloc(Var{Name: "y"})})
	fn := h.Alloc(&Fun{Formal: "x", Body: body})
	five := h.Alloc(Num{Value: 5})

	result := Subst(h, fn, "y", five)
	want := h.Alloc(&Fun{Formal: "x", Body: h.Alloc(&Add{Lhs: h.Alloc(Var{Name: "x"}), Rhs: h.Alloc(Num{Value: 5})})})
	if !Equals(h, result, want) {
		t.Fatalf("Subst(y->5) = %s, want %s", String(h, result), String(h, want))
	}
}

func TestSubstStopsAtShadowingFunBinder(t *testing.T) {
	h := gc.NewHeap(256)
	// _fun (x) x, subst x -> 5: the bound x is untouched.
	body := h.Alloc(Var{Name: "x"})
	fn := h.Alloc(&Fun{Formal: "x", Body: body})
	five := h.Alloc(Num{Value: 5})

	result := Subst(h, fn, "x", five)
	if !Equals(h, result, fn) {
		t.Fatalf("Subst through a shadowing Fun binder changed the tree")
	}
}

func TestSubstLetSubstitutesRhsNotShadowedBody(t *testing.T) {
	h := gc.NewHeap(256)
	// _let x = x + 1 _in x, subst x -> 5: rhs substituted, body untouched.
	rhs := h.Alloc(&Add{Lhs: h.Alloc(Var{Name: "x"}), Rhs: h.Alloc(Num{Value: 1})})
	body := h.Alloc(Var{Name: "x"})
	let := h.Alloc(&Let{Name: "x", Rhs: rhs, Body: body})
	five := h.Alloc(Num{Value: 5})

	result := Subst(h, let, "x", five)
	got := h.Get(result).(*Let)
	wantRhs := h.Alloc(&Add{Lhs: h.Alloc(Num{Value: 5}), Rhs: h.Alloc(Num{Value: 1})})
	if !Equals(h, got.Rhs, wantRhs) {
		t.Fatalf("rhs = %s, want %s", String(h, got.Rhs), String(h, wantRhs))
	}
	if !Equals(h, got.Body, body) {
		t.Fatalf("body changed even though x is shadowed by the let")
	}
}

func TestFreeVars(t *testing.T) {
	h := gc.NewHeap(256)
	// _let x = y _in x + z
	e := h.Alloc(&Let{
		Name: "x",
		Rhs:  h.Alloc(Var{Name: "y"}),
		Body: h.Alloc(&Add{Lhs: h.Alloc(Var{Name: "x"}), Rhs: h.Alloc(Var{Name: "z"})}),
	})
	free := FreeVars(h, e)
	for _, want := range []string{"y", "z"} {
		if _, ok := free[want]; !ok {
			t.Errorf("FreeVars missing %q, got %v", want, free)
		}
	}
	if _, ok := free["x"]; ok {
		t.Errorf("FreeVars incorrectly included bound name x")
	}
	if len(free) != 2 {
		t.Errorf("FreeVars = %v, want exactly {y, z}", free)
	}
}

func TestStringRendersFullyParenthesized(t *testing.T) {
	h := gc.NewHeap(256)
	e := h.Alloc(&Let{
		Name: "f",
		Rhs:  h.Alloc(&Fun{Formal: "x", Body: h.Alloc(&Add{Lhs: h.Alloc(Var{Name: "x"}), Rhs: h.Alloc(Num{Value: 1})})}),
		Body: h.Alloc(&Call{Callee: h.Alloc(Var{Name: "f"}), Arg: h.Alloc(Num{Value: 10})}),
	})
	s := String(h, e)
	want := "(_let f = (_fun (x) (x + 1)) _in (f(10)))"
	if s != want {
		t.Fatalf("String = %q, want %q", s, want)
	}
}
