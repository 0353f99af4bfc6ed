package ast

import "github.com/msdscript-go/msdscript/internal/gc"

// Equals reports structural equality: leaves compare payloads, compound
// nodes recurse on corresponding children, different variants always
// compare unequal.
func Equals(h *gc.Heap, a, b gc.Ref) bool {
	if a == gc.Nil || b == gc.Nil {
		return a == b
	}
	ea, eb := h.Get(a), h.Get(b)
	switch x := ea.(type) {
	case Num:
		y, ok := eb.(Num)
		return ok && x.Value == y.Value
	case Bool:
		y, ok := eb.(Bool)
		return ok && x.Value == y.Value
	case Var:
		y, ok := eb.(Var)
		return ok && x.Name == y.Name
	case *Add:
		y, ok := eb.(*Add)
		return ok && Equals(h, x.Lhs, y.Lhs) && Equals(h, x.Rhs, y.Rhs)
	case *Mult:
		y, ok := eb.(*Mult)
		return ok && Equals(h, x.Lhs, y.Lhs) && Equals(h, x.Rhs, y.Rhs)
	case *Comp:
		y, ok := eb.(*Comp)
		return ok && Equals(h, x.Lhs, y.Lhs) && Equals(h, x.Rhs, y.Rhs)
	case *If:
		y, ok := eb.(*If)
		return ok && Equals(h, x.Test, y.Test) && Equals(h, x.Then, y.Then) && Equals(h, x.Else, y.Else)
	case *Let:
		y, ok := eb.(*Let)
		return ok && x.Name == y.Name && Equals(h, x.Rhs, y.Rhs) && Equals(h, x.Body, y.Body)
	case *Fun:
		y, ok := eb.(*Fun)
		return ok && x.Formal == y.Formal && Equals(h, x.Body, y.Body)
	case *Call:
		y, ok := eb.(*Call)
		return ok && Equals(h, x.Callee, y.Callee) && Equals(h, x.Arg, y.Arg)
	default:
		return false
	}
}
