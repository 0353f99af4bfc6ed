// Package ast defines the expression sum type: Num, Bool, Var, Add, Mult,
// Comp, If, Let, Fun, and Call. Every variant is allocated on a gc.Heap and
// referenced by gc.Ref rather than a native pointer, so the same tree can
// be walked either by direct recursion (internal/interp) or by the
// heap-driven stepping machine (internal/cek) without copying it.
package ast

import "github.com/msdscript-go/msdscript/internal/gc"

// Expr is implemented by every expression variant.
type Expr interface {
	gc.Object
	exprNode()
}

// Num is an integer literal.
type Num struct {
	Value int32
}

func (Num) exprNode()            {}
func (Num) Size() int            { return 1 }
func (Num) Trace(func(*gc.Ref)) {}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (Bool) exprNode()            {}
func (Bool) Size() int            { return 1 }
func (Bool) Trace(func(*gc.Ref)) {}

// Var is a name reference.
type Var struct {
	Name string
}

func (Var) exprNode()            {}
func (Var) Size() int            { return 1 }
func (Var) Trace(func(*gc.Ref)) {}

// Add is binary addition.
type Add struct {
	Lhs, Rhs gc.Ref // Expr
}

func (Add) exprNode() {}
func (Add) Size() int { return 2 }
func (a *Add) Trace(update func(*gc.Ref)) {
	update(&a.Lhs)
	update(&a.Rhs)
}

// Mult is binary multiplication.
type Mult struct {
	Lhs, Rhs gc.Ref // Expr
}

func (Mult) exprNode() {}
func (Mult) Size() int { return 2 }
func (m *Mult) Trace(update func(*gc.Ref)) {
	update(&m.Lhs)
	update(&m.Rhs)
}

// Comp is structural equality comparison, yielding a boolean value.
type Comp struct {
	Lhs, Rhs gc.Ref // Expr
}

func (Comp) exprNode() {}
func (Comp) Size() int { return 2 }
func (c *Comp) Trace(update func(*gc.Ref)) {
	update(&c.Lhs)
	update(&c.Rhs)
}

// If is a conditional.
type If struct {
	Test, Then, Else gc.Ref // Expr
}

func (If) exprNode() {}
func (If) Size() int { return 3 }
func (i *If) Trace(update func(*gc.Ref)) {
	update(&i.Test)
	update(&i.Then)
	update(&i.Else)
}

// Let is a non-recursive binding: Name is bound in Body only, not in Rhs.
type Let struct {
	Name     string
	Rhs, Body gc.Ref // Expr
}

func (Let) exprNode() {}
func (Let) Size() int { return 2 }
func (l *Let) Trace(update func(*gc.Ref)) {
	update(&l.Rhs)
	update(&l.Body)
}

// Fun is a function expression; it evaluates to a closure.
type Fun struct {
	Formal string
	Body   gc.Ref // Expr
}

func (Fun) exprNode() {}
func (Fun) Size() int { return 1 }
func (f *Fun) Trace(update func(*gc.Ref)) {
	update(&f.Body)
}

// Call is single-argument application.
type Call struct {
	Callee, Arg gc.Ref // Expr
}

func (Call) exprNode() {}
func (Call) Size() int { return 2 }
func (c *Call) Trace(update func(*gc.Ref)) {
	update(&c.Callee)
	update(&c.Arg)
}
