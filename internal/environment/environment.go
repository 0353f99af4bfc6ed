// Package environment implements the immutable, heap-allocated binding
// chain used by both the direct interpreter and the stepping machine.
package environment

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/gc"
)

// Env is implemented by Empty and Extended.
type Env interface {
	gc.Object
	envNode()
}

// Empty is the empty environment; lookup fails at Empty.
type Empty struct{}

func (Empty) envNode()           {}
func (Empty) Size() int          { return 0 }
func (Empty) Trace(func(*gc.Ref)) {}

// Extended binds Name to Value, shadowing any binding of the same name in
// Parent.
type Extended struct {
	Name   string
	Value  gc.Ref // value.Value
	Parent gc.Ref // Env
}

func (Extended) envNode() {}
func (Extended) Size() int { return 2 }
func (e *Extended) Trace(update func(*gc.Ref)) {
	update(&e.Value)
	update(&e.Parent)
}

// Lookup returns the most recently bound value for name, walking the chain
// from env toward Empty. It fails with "free variable: <name>" at Empty.
func Lookup(h *gc.Heap, env gc.Ref, name string) (gc.Ref, error) {
	for {
		switch e := h.Get(env).(type) {
		case Empty:
			return gc.Nil, fmt.Errorf("free variable: %s", name)
		case *Extended:
			if e.Name == name {
				return e.Value, nil
			}
			env = e.Parent
		default:
			return gc.Nil, fmt.Errorf("malformed environment")
		}
	}
}

// Equals compares two environment chains position-by-position: same
// length, same names, same bound-value Refs, and a structurally equal
// parent chain beyond that.
func Equals(h *gc.Heap, a, b gc.Ref) bool {
	for {
		ea, eb := h.Get(a), h.Get(b)
		switch x := ea.(type) {
		case Empty:
			_, ok := eb.(Empty)
			return ok
		case *Extended:
			y, ok := eb.(*Extended)
			if !ok || x.Name != y.Name || x.Value != y.Value {
				return false
			}
			a, b = x.Parent, y.Parent
		default:
			return false
		}
	}
}
