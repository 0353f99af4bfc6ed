// Package cont defines the continuation sum type used by the stepping
// machine: each variant reifies a pending stack frame as a heap object, so
// the interpreter's control stack lives on the collected heap instead of
// the native call stack. The package depends only on gc — every field that
// conceptually points at an Expr, Env, Value, or another Cont is stored as
// a bare gc.Ref, so cont never needs to import ast/value/environment and
// those packages never need to import cont.
package cont

import "github.com/msdscript-go/msdscript/internal/gc"

// Cont is implemented by every continuation variant.
type Cont interface {
	gc.Object
	contNode()
}

// Done is the terminal continuation. step_continue must never run against
// it — the stepping driver checks for Done before dispatching.
type Done struct{}

func (Done) contNode()           {}
func (Done) Size() int           { return 0 }
func (Done) Trace(func(*gc.Ref)) {}

// RightThenAdd holds the pending rhs expression and environment for an Add
// whose lhs has just finished evaluating.
type RightThenAdd struct {
	RhsExpr gc.Ref
	Env     gc.Ref
	Rest    gc.Ref // Cont
}

func (RightThenAdd) contNode() {}
func (RightThenAdd) Size() int { return 3 }
func (c *RightThenAdd) Trace(update func(*gc.Ref)) {
	update(&c.RhsExpr)
	update(&c.Env)
	update(&c.Rest)
}

// AddCont holds the lhs value while the rhs of an Add evaluates.
type AddCont struct {
	LhsVal gc.Ref
	Rest   gc.Ref // Cont
}

func (AddCont) contNode() {}
func (AddCont) Size() int { return 2 }
func (c *AddCont) Trace(update func(*gc.Ref)) {
	update(&c.LhsVal)
	update(&c.Rest)
}

// RightThenMult is RightThenAdd's counterpart for Mult.
type RightThenMult struct {
	RhsExpr gc.Ref
	Env     gc.Ref
	Rest    gc.Ref
}

func (RightThenMult) contNode() {}
func (RightThenMult) Size() int { return 3 }
func (c *RightThenMult) Trace(update func(*gc.Ref)) {
	update(&c.RhsExpr)
	update(&c.Env)
	update(&c.Rest)
}

// MultCont is AddCont's counterpart for Mult.
type MultCont struct {
	LhsVal gc.Ref
	Rest   gc.Ref
}

func (MultCont) contNode() {}
func (MultCont) Size() int { return 2 }
func (c *MultCont) Trace(update func(*gc.Ref)) {
	update(&c.LhsVal)
	update(&c.Rest)
}

// RightThenComp is RightThenAdd's counterpart for Comp.
type RightThenComp struct {
	RhsExpr gc.Ref
	Env     gc.Ref
	Rest    gc.Ref
}

func (RightThenComp) contNode() {}
func (RightThenComp) Size() int { return 3 }
func (c *RightThenComp) Trace(update func(*gc.Ref)) {
	update(&c.RhsExpr)
	update(&c.Env)
	update(&c.Rest)
}

// CompCont is AddCont's counterpart for Comp; step_continue produces
// BoolVal(lhs.equals(rhs)) from it.
type CompCont struct {
	LhsVal gc.Ref
	Rest   gc.Ref
}

func (CompCont) contNode() {}
func (CompCont) Size() int { return 2 }
func (c *CompCont) Trace(update func(*gc.Ref)) {
	update(&c.LhsVal)
	update(&c.Rest)
}

// ArgThenCall holds the pending argument expression and environment for a
// Call whose callee has just finished evaluating.
type ArgThenCall struct {
	ArgExpr gc.Ref
	Env     gc.Ref
	Rest    gc.Ref
}

func (ArgThenCall) contNode() {}
func (ArgThenCall) Size() int { return 3 }
func (c *ArgThenCall) Trace(update func(*gc.Ref)) {
	update(&c.ArgExpr)
	update(&c.Env)
	update(&c.Rest)
}

// CallCont holds the callee value while the argument of a Call evaluates.
type CallCont struct {
	CalleeVal gc.Ref
	Rest      gc.Ref
}

func (CallCont) contNode() {}
func (CallCont) Size() int { return 2 }
func (c *CallCont) Trace(update func(*gc.Ref)) {
	update(&c.CalleeVal)
	update(&c.Rest)
}

// IfBranch decides the branch of an If once the test value is known.
type IfBranch struct {
	ThenExpr gc.Ref
	ElseExpr gc.Ref
	Env      gc.Ref
	Rest     gc.Ref
}

func (IfBranch) contNode() {}
func (IfBranch) Size() int { return 4 }
func (c *IfBranch) Trace(update func(*gc.Ref)) {
	update(&c.ThenExpr)
	update(&c.ElseExpr)
	update(&c.Env)
	update(&c.Rest)
}

// LetBody extends the environment with the evaluated rhs, then interprets
// the body.
type LetBody struct {
	Name     string
	BodyExpr gc.Ref
	Env      gc.Ref
	Rest     gc.Ref
}

func (LetBody) contNode() {}
func (LetBody) Size() int { return 3 }
func (c *LetBody) Trace(update func(*gc.Ref)) {
	update(&c.BodyExpr)
	update(&c.Env)
	update(&c.Rest)
}
