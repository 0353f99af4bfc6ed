package ast

import "github.com/msdscript-go/msdscript/internal/gc"

// FreeVars derives the set of free variable names in e directly from the
// AST. spec.md §9 flags the source's own contains_var as ambiguous and
// recommends deriving a free-variable set directly from the tree rather
// than entangling it with the optimizer; this is that derivation, and
// ContainsVar and the optimizer both build on it.
func FreeVars(h *gc.Heap, e gc.Ref) map[string]struct{} {
	set := make(map[string]struct{})
	collectFreeVars(h, e, set)
	return set
}

func collectFreeVars(h *gc.Heap, e gc.Ref, set map[string]struct{}) {
	if e == gc.Nil {
		return
	}
	switch x := h.Get(e).(type) {
	case Num, Bool:
		// no variables
	case Var:
		set[x.Name] = struct{}{}
	case *Add:
		collectFreeVars(h, x.Lhs, set)
		collectFreeVars(h, x.Rhs, set)
	case *Mult:
		collectFreeVars(h, x.Lhs, set)
		collectFreeVars(h, x.Rhs, set)
	case *Comp:
		collectFreeVars(h, x.Lhs, set)
		collectFreeVars(h, x.Rhs, set)
	case *If:
		collectFreeVars(h, x.Test, set)
		collectFreeVars(h, x.Then, set)
		collectFreeVars(h, x.Else, set)
	case *Let:
		collectFreeVars(h, x.Rhs, set)
		inner := make(map[string]struct{})
		collectFreeVars(h, x.Body, inner)
		delete(inner, x.Name)
		for n := range inner {
			set[n] = struct{}{}
		}
	case *Fun:
		inner := make(map[string]struct{})
		collectFreeVars(h, x.Body, inner)
		delete(inner, x.Formal)
		for n := range inner {
			set[n] = struct{}{}
		}
	case *Call:
		collectFreeVars(h, x.Callee, set)
		collectFreeVars(h, x.Arg, set)
	}
}

// ContainsVar reports whether e has any free variable at all.
func ContainsVar(h *gc.Heap, e gc.Ref) bool {
	return len(FreeVars(h, e)) > 0
}
