// Package interp implements the direct, natively-recursive interpreter
// (spec.md §4.1's interp(env)). It never touches the collector — see
// DESIGN.md for why check_collect is exclusively the stepping driver's
// concern.
package interp

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/value"
)

// Eval interprets e in env by direct recursion on the native (Go call)
// stack, returning a Ref to the resulting value.Value.
func Eval(h *gc.Heap, e gc.Ref, env gc.Ref) (gc.Ref, error) {
	switch x := h.Get(e).(type) {
	case ast.Num:
		return h.Alloc(value.NumVal{Value: x.Value}), nil
	case ast.Bool:
		return h.Alloc(value.BoolVal{Value: x.Value}), nil
	case ast.Var:
		return environment.Lookup(h, env, x.Name)
	case *ast.Add:
		return evalArith(h, e, env, value.AddTo)
	case *ast.Mult:
		return evalArith(h, e, env, value.MultWith)
	case *ast.Comp:
		lhs, err := Eval(h, x.Lhs, env)
		if err != nil {
			return gc.Nil, err
		}
		rhs, err := Eval(h, x.Rhs, env)
		if err != nil {
			return gc.Nil, err
		}
		return h.Alloc(value.BoolVal{Value: value.Equals(h.Get(lhs).(value.Value), h.Get(rhs).(value.Value))}), nil
	case *ast.If:
		testVal, err := Eval(h, x.Test, env)
		if err != nil {
			return gc.Nil, err
		}
		b, err := value.IsTrue(h.Get(testVal).(value.Value))
		if err != nil {
			return gc.Nil, err
		}
		if b {
			return Eval(h, x.Then, env)
		}
		return Eval(h, x.Else, env)
	case *ast.Let:
		rhsVal, err := Eval(h, x.Rhs, env)
		if err != nil {
			return gc.Nil, err
		}
		newEnv := h.Alloc(&environment.Extended{Name: x.Name, Value: rhsVal, Parent: env})
		return Eval(h, x.Body, newEnv)
	case *ast.Fun:
		return h.Alloc(&value.FunVal{Formal: x.Formal, Body: x.Body, Env: env}), nil
	case *ast.Call:
		calleeVal, err := Eval(h, x.Callee, env)
		if err != nil {
			return gc.Nil, err
		}
		argVal, err := Eval(h, x.Arg, env)
		if err != nil {
			return gc.Nil, err
		}
		return Call(h, calleeVal, argVal)
	default:
		return gc.Nil, fmt.Errorf("unknown expression node")
	}
}

type binOp func(a, b value.Value) (value.Value, error)

func evalArith(h *gc.Heap, e gc.Ref, env gc.Ref, op binOp) (gc.Ref, error) {
	var lhsRef, rhsRef gc.Ref
	switch x := h.Get(e).(type) {
	case *ast.Add:
		lhsRef, rhsRef = x.Lhs, x.Rhs
	case *ast.Mult:
		lhsRef, rhsRef = x.Lhs, x.Rhs
	}
	lhs, err := Eval(h, lhsRef, env)
	if err != nil {
		return gc.Nil, err
	}
	rhs, err := Eval(h, rhsRef, env)
	if err != nil {
		return gc.Nil, err
	}
	result, err := op(h.Get(lhs).(value.Value), h.Get(rhs).(value.Value))
	if err != nil {
		return gc.Nil, err
	}
	return h.Alloc(result), nil
}

// Call dispatches application: extends the closure's captured environment
// with formal -> arg and interprets the body. Fails with "not a function"
// for non-closures.
func Call(h *gc.Heap, calleeRef, argRef gc.Ref) (gc.Ref, error) {
	fn, ok := h.Get(calleeRef).(*value.FunVal)
	if !ok {
		return gc.Nil, fmt.Errorf("not a function")
	}
	newEnv := h.Alloc(&environment.Extended{Name: fn.Formal, Value: argRef, Parent: fn.Env})
	return Eval(h, fn.Body, newEnv)
}
