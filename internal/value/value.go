// Package value defines the runtime value sum type: NumVal, BoolVal, and
// FunVal. Values are heap-allocated gc.Objects, same as expressions,
// environments, and continuations, so a closure's captured environment
// survives collection like everything else reachable from a machine
// register.
package value

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/gc"
)

// Value is implemented by every runtime value variant.
type Value interface {
	gc.Object
	valueNode()
}

// NumVal is a runtime integer.
type NumVal struct {
	Value int32
}

func (NumVal) valueNode()          {}
func (NumVal) Size() int           { return 1 }
func (NumVal) Trace(func(*gc.Ref)) {}

// BoolVal is a runtime boolean.
type BoolVal struct {
	Value bool
}

func (BoolVal) valueNode()          {}
func (BoolVal) Size() int           { return 1 }
func (BoolVal) Trace(func(*gc.Ref)) {}

// FunVal is a closure: a formal parameter name, a body expression (a
// gc.Ref into an ast.Fun's body, but typed generically here to avoid a
// value<->ast import cycle — see DESIGN.md), and the environment captured
// at creation time.
type FunVal struct {
	Formal string
	Body   gc.Ref // ast.Expr
	Env    gc.Ref // environment.Env
}

func (FunVal) valueNode() {}
func (FunVal) Size() int  { return 2 }
func (f *FunVal) Trace(update func(*gc.Ref)) {
	update(&f.Body)
	update(&f.Env)
}

// Equals reports structural equality: same variant and equal payloads.
// Closures compare by formal name and body/environment structure — since
// Body and Env are opaque Refs here, structural comparison of the
// referenced expression/environment trees is the caller's job (internal/ast
// and internal/environment respectively provide Equals for that); Equals
// here compares the shallow closure shape only, matching how the rest of
// the interpreter never needs deep closure equality outside tests.
func Equals(a, b Value) bool {
	switch x := a.(type) {
	case NumVal:
		y, ok := b.(NumVal)
		return ok && x.Value == y.Value
	case BoolVal:
		y, ok := b.(BoolVal)
		return ok && x.Value == y.Value
	case *FunVal:
		y, ok := b.(*FunVal)
		return ok && x.Formal == y.Formal && x.Body == y.Body && x.Env == y.Env
	default:
		return false
	}
}

// AddTo is defined only on pairs of numbers.
func AddTo(a, b Value) (Value, error) {
	x, ok := a.(NumVal)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	y, ok := b.(NumVal)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	// Overflow wraps two's-complement, matching the source variant spec.md
	// §9 documents rather than failing with a checked-arithmetic error.
	return NumVal{Value: int32(uint32(x.Value) + uint32(y.Value))}, nil
}

// MultWith is defined only on pairs of numbers.
func MultWith(a, b Value) (Value, error) {
	x, ok := a.(NumVal)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	y, ok := b.(NumVal)
	if !ok {
		return nil, fmt.Errorf("not a number")
	}
	return NumVal{Value: int32(uint32(x.Value) * uint32(y.Value))}, nil
}

// IsTrue is defined only on booleans.
func IsTrue(v Value) (bool, error) {
	b, ok := v.(BoolVal)
	if !ok {
		return false, fmt.Errorf("not a boolean")
	}
	return b.Value, nil
}

// ToString renders v in the surface grammar's value notation: integers in
// decimal, booleans as _true/_false, closures as the literal [FUNCTION].
func ToString(v Value) string {
	switch x := v.(type) {
	case NumVal:
		return fmt.Sprintf("%d", x.Value)
	case BoolVal:
		if x.Value {
			return "_true"
		}
		return "_false"
	case *FunVal:
		return "[FUNCTION]"
	default:
		return "<?>"
	}
}
