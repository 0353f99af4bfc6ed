package ast

import "github.com/msdscript-go/msdscript/internal/gc"

// Subst substitutes replacement for every free occurrence of name in e,
// returning a freshly built tree (the original is never mutated — spec.md
// §9 flags a source variant that mutated its receiver as a defect to
// avoid). replacement is itself an already-allocated Expr; callers that
// need to splice in a runtime Value first embed it via the optimizer's
// value-to-expr conversion.
//
// For Let and Fun, if the bound name shadows name, substitution stops at
// that binder: under Fun the body is left untouched; under Let the rhs is
// still substituted (it is evaluated in the enclosing scope) but the body
// is not.
func Subst(h *gc.Heap, e gc.Ref, name string, replacement gc.Ref) gc.Ref {
	if e == gc.Nil {
		return e
	}
	switch x := h.Get(e).(type) {
	case Num, Bool:
		return e
	case Var:
		if x.Name == name {
			return replacement
		}
		return e
	case *Add:
		return h.Alloc(&Add{Lhs: Subst(h, x.Lhs, name, replacement), Rhs: Subst(h, x.Rhs, name, replacement)})
	case *Mult:
		return h.Alloc(&Mult{Lhs: Subst(h, x.Lhs, name, replacement), Rhs: Subst(h, x.Rhs, name, replacement)})
	case *Comp:
		return h.Alloc(&Comp{Lhs: Subst(h, x.Lhs, name, replacement), Rhs: Subst(h, x.Rhs, name, replacement)})
	case *If:
		return h.Alloc(&If{
			Test: Subst(h, x.Test, name, replacement),
			Then: Subst(h, x.Then, name, replacement),
			Else: Subst(h, x.Else, name, replacement),
		})
	case *Let:
		newRhs := Subst(h, x.Rhs, name, replacement)
		if x.Name == name {
			return h.Alloc(&Let{Name: x.Name, Rhs: newRhs, Body: x.Body})
		}
		return h.Alloc(&Let{Name: x.Name, Rhs: newRhs, Body: Subst(h, x.Body, name, replacement)})
	case *Fun:
		if x.Formal == name {
			return e
		}
		return h.Alloc(&Fun{Formal: x.Formal, Body: Subst(h, x.Body, name, replacement)})
	case *Call:
		return h.Alloc(&Call{Callee: Subst(h, x.Callee, name, replacement), Arg: Subst(h, x.Arg, name, replacement)})
	default:
		return e
	}
}
