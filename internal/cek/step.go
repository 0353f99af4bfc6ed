package cek

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/cont"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/value"
)

// stepInterp is Expr.step_interp (spec.md §4.3): it mutates the machine's
// registers and never recurses on the native stack. Num/Bool/Fun fabricate
// their value directly; Var performs a lookup; every binary/call/if/let
// form pushes the appropriate continuation frame and descends into its
// first subexpression.
func (m *Machine) stepInterp(h *gc.Heap) error {
	switch x := h.Get(m.Expr).(type) {
	case ast.Num:
		m.Val = h.Alloc(value.NumVal{Value: x.Value})
		m.Mode = Continue
	case ast.Bool:
		m.Val = h.Alloc(value.BoolVal{Value: x.Value})
		m.Mode = Continue
	case ast.Var:
		v, err := environment.Lookup(h, m.Env, x.Name)
		if err != nil {
			return err
		}
		m.Val = v
		m.Mode = Continue
	case *ast.Fun:
		m.Val = h.Alloc(&value.FunVal{Formal: x.Formal, Body: x.Body, Env: m.Env})
		m.Mode = Continue
	case *ast.Add:
		m.Cont = h.Alloc(&cont.RightThenAdd{RhsExpr: x.Rhs, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Lhs
	case *ast.Mult:
		m.Cont = h.Alloc(&cont.RightThenMult{RhsExpr: x.Rhs, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Lhs
	case *ast.Comp:
		m.Cont = h.Alloc(&cont.RightThenComp{RhsExpr: x.Rhs, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Lhs
	case *ast.Call:
		m.Cont = h.Alloc(&cont.ArgThenCall{ArgExpr: x.Arg, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Callee
	case *ast.If:
		m.Cont = h.Alloc(&cont.IfBranch{ThenExpr: x.Then, ElseExpr: x.Else, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Test
	case *ast.Let:
		m.Cont = h.Alloc(&cont.LetBody{Name: x.Name, BodyExpr: x.Body, Env: m.Env, Rest: m.Cont})
		m.Expr = x.Rhs
	default:
		return fmt.Errorf("unknown expression node")
	}
	return nil
}

// stepContinue is Cont.step_continue (spec.md §4.3): val holds the value
// just produced, and each variant either delivers it to a sibling
// subexpression (switching back to Interp mode) or combines it with a
// previously stashed value and pops to Rest.
func (m *Machine) stepContinue(h *gc.Heap) error {
	switch c := h.Get(m.Cont).(type) {
	case cont.Done:
		return errDoneStepped

	case *cont.RightThenAdd:
		m.Mode = Interp
		m.Expr = c.RhsExpr
		m.Env = c.Env
		m.Cont = h.Alloc(&cont.AddCont{LhsVal: m.Val, Rest: c.Rest})
	case *cont.AddCont:
		result, err := value.AddTo(asValue(h, c.LhsVal), asValue(h, m.Val))
		if err != nil {
			return err
		}
		m.Val = h.Alloc(result)
		m.Cont = c.Rest

	case *cont.RightThenMult:
		m.Mode = Interp
		m.Expr = c.RhsExpr
		m.Env = c.Env
		m.Cont = h.Alloc(&cont.MultCont{LhsVal: m.Val, Rest: c.Rest})
	case *cont.MultCont:
		result, err := value.MultWith(asValue(h, c.LhsVal), asValue(h, m.Val))
		if err != nil {
			return err
		}
		m.Val = h.Alloc(result)
		m.Cont = c.Rest

	case *cont.RightThenComp:
		m.Mode = Interp
		m.Expr = c.RhsExpr
		m.Env = c.Env
		m.Cont = h.Alloc(&cont.CompCont{LhsVal: m.Val, Rest: c.Rest})
	case *cont.CompCont:
		m.Val = h.Alloc(value.BoolVal{Value: value.Equals(asValue(h, c.LhsVal), asValue(h, m.Val))})
		m.Cont = c.Rest

	case *cont.ArgThenCall:
		m.Mode = Interp
		m.Expr = c.ArgExpr
		m.Env = c.Env
		m.Cont = h.Alloc(&cont.CallCont{CalleeVal: m.Val, Rest: c.Rest})
	case *cont.CallCont:
		fn, ok := h.Get(c.CalleeVal).(*value.FunVal)
		if !ok {
			return fmt.Errorf("not a function")
		}
		m.Mode = Interp
		m.Expr = fn.Body
		m.Env = h.Alloc(&environment.Extended{Name: fn.Formal, Value: m.Val, Parent: fn.Env})
		m.Cont = c.Rest

	case *cont.IfBranch:
		b, err := value.IsTrue(asValue(h, m.Val))
		if err != nil {
			return err
		}
		m.Mode = Interp
		if b {
			m.Expr = c.ThenExpr
		} else {
			m.Expr = c.ElseExpr
		}
		m.Env = c.Env
		m.Cont = c.Rest

	case *cont.LetBody:
		m.Mode = Interp
		m.Env = h.Alloc(&environment.Extended{Name: c.Name, Value: m.Val, Parent: c.Env})
		m.Expr = c.BodyExpr
		m.Cont = c.Rest

	default:
		return fmt.Errorf("unknown continuation frame")
	}
	return nil
}

func asValue(h *gc.Heap, r gc.Ref) value.Value {
	return h.Get(r).(value.Value)
}
