// Package optimize implements the constant-folding AST-to-AST optimizer of
// spec.md §4.1, plus the value.Value -> ast.Expr embedding (spec.md §4.2's
// to_expr) that folding needs. It is the one package that imports both ast
// and value, so neither of those needs to import the other.
package optimize

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/interp"
	"github.com/msdscript-go/msdscript/internal/value"
)

// ToExpr embeds v back into an expression tree. Numbers and booleans embed
// as their literal node; a closure embeds as a Fun node reusing its body —
// valid specifically because ToExpr is only ever called on the value of a
// variable-free expression, so the closure's body has no free variable the
// captured environment could matter for.
func ToExpr(h *gc.Heap, v value.Value) (gc.Ref, error) {
	switch x := v.(type) {
	case value.NumVal:
		return h.Alloc(ast.Num{Value: x.Value}), nil
	case value.BoolVal:
		return h.Alloc(ast.Bool{Value: x.Value}), nil
	case *value.FunVal:
		return h.Alloc(&ast.Fun{Formal: x.Formal, Body: x.Body}), nil
	default:
		return gc.Nil, fmt.Errorf("value has no expression form")
	}
}

// Optimize performs constant folding, let-bound-constant substitution, and
// dead-branch elimination, returning a fresh (or, for unchanged leaves,
// shared) Expr tree.
func Optimize(h *gc.Heap, e gc.Ref) gc.Ref {
	switch x := h.Get(e).(type) {
	case ast.Num, ast.Bool, ast.Var:
		return e

	case *ast.Add:
		return foldArith(h, x.Lhs, x.Rhs, value.AddTo, func(l, r gc.Ref) gc.Ref {
			return h.Alloc(&ast.Add{Lhs: l, Rhs: r})
		})

	case *ast.Mult:
		return foldArith(h, x.Lhs, x.Rhs, value.MultWith, func(l, r gc.Ref) gc.Ref {
			return h.Alloc(&ast.Mult{Lhs: l, Rhs: r})
		})

	case *ast.Comp:
		lhs, rhs := Optimize(h, x.Lhs), Optimize(h, x.Rhs)
		if !ast.ContainsVar(h, lhs) && !ast.ContainsVar(h, rhs) {
			if lv, rv, ok := evalBoth(h, lhs, rhs); ok {
				return h.Alloc(ast.Bool{Value: value.Equals(lv, rv)})
			}
		}
		return h.Alloc(&ast.Comp{Lhs: lhs, Rhs: rhs})

	case *ast.If:
		if !ast.ContainsVar(h, x.Test) {
			if v, ok := evalOne(h, x.Test); ok {
				if b, err := value.IsTrue(v); err == nil {
					if b {
						return Optimize(h, x.Then)
					}
					return Optimize(h, x.Else)
				}
			}
		}
		return h.Alloc(&ast.If{
			Test: Optimize(h, x.Test),
			Then: Optimize(h, x.Then),
			Else: Optimize(h, x.Else),
		})

	case *ast.Let:
		rhs := Optimize(h, x.Rhs)
		if !ast.ContainsVar(h, rhs) {
			if v, ok := evalOne(h, rhs); ok {
				if replacement, err := ToExpr(h, v); err == nil {
					return Optimize(h, ast.Subst(h, x.Body, x.Name, replacement))
				}
			}
		}
		return h.Alloc(&ast.Let{Name: x.Name, Rhs: rhs, Body: Optimize(h, x.Body)})

	case *ast.Fun:
		return h.Alloc(&ast.Fun{Formal: x.Formal, Body: Optimize(h, x.Body)})

	case *ast.Call:
		return h.Alloc(&ast.Call{Callee: Optimize(h, x.Callee), Arg: Optimize(h, x.Arg)})

	default:
		return e
	}
}

type binOp func(a, b value.Value) (value.Value, error)

// foldArith optimizes both children, and if both are variable-free,
// attempts to fold them via op; evaluation or type failures fall back to
// rebuilding with the optimized (unfolded) children, leaving the error for
// ordinary interpretation to surface.
func foldArith(h *gc.Heap, lhsRef, rhsRef gc.Ref, op binOp, rebuild func(l, r gc.Ref) gc.Ref) gc.Ref {
	lhs, rhs := Optimize(h, lhsRef), Optimize(h, rhsRef)
	if !ast.ContainsVar(h, lhs) && !ast.ContainsVar(h, rhs) {
		if lv, rv, ok := evalBoth(h, lhs, rhs); ok {
			if result, err := op(lv, rv); err == nil {
				if folded, ferr := ToExpr(h, result); ferr == nil {
					return folded
				}
			}
		}
	}
	return rebuild(lhs, rhs)
}

func evalOne(h *gc.Heap, e gc.Ref) (value.Value, bool) {
	env := h.Alloc(environment.Empty{})
	v, err := interp.Eval(h, e, env)
	if err != nil {
		return nil, false
	}
	return h.Get(v).(value.Value), true
}

func evalBoth(h *gc.Heap, a, b gc.Ref) (value.Value, value.Value, bool) {
	av, ok := evalOne(h, a)
	if !ok {
		return nil, nil, false
	}
	bv, ok := evalOne(h, b)
	if !ok {
		return nil, nil, false
	}
	return av, bv, true
}
