// Package cek implements the stepping interpreter: the CEK
// (Control/Environment/Kontinuation) machine of spec.md §4.3. Every
// pending computation is reified as a heap-allocated continuation
// (internal/cont) instead of a native call frame, so the machine's native
// stack depth never grows with the depth of the interpreted program —
// that is the entire reason this package exists alongside the direct
// recursive interpreter in internal/interp.
package cek

import (
	"fmt"

	"github.com/msdscript-go/msdscript/internal/cont"
	"github.com/msdscript-go/msdscript/internal/environment"
	"github.com/msdscript-go/msdscript/internal/gc"
)

// Mode selects which pair of registers the driver consults on each step.
type Mode int

const (
	// Interp means Expr/Env are meaningful and about to be evaluated.
	Interp Mode = iota
	// Continue means Val is meaningful and about to be delivered to Cont.
	Continue
)

// Machine holds the CEK machine's five registers plus the two canonical
// singletons. It implements gc.RootProvider so the collector's safepoint
// can enumerate exactly the registers meaningful to the current mode, plus
// Cont and the two singletons — spec.md §4.5's root set, taken literally.
type Machine struct {
	Mode Mode
	Expr gc.Ref // ast.Expr; meaningful in Interp mode
	Env  gc.Ref // environment.Env; meaningful in Interp mode
	Val  gc.Ref // value.Value; meaningful in Continue mode
	Cont gc.Ref // cont.Cont; always meaningful

	Done  gc.Ref // canonical terminal continuation
	Empty gc.Ref // canonical empty environment
}

// NewMachine allocates the two canonical singletons on h and returns a
// fresh, otherwise zeroed Machine.
func NewMachine(h *gc.Heap) *Machine {
	return &Machine{
		Done:  h.Alloc(cont.Done{}),
		Empty: h.Alloc(environment.Empty{}),
	}
}

// UpdateRoots implements gc.RootProvider.
func (m *Machine) UpdateRoots(update func(*gc.Ref)) {
	switch m.Mode {
	case Interp:
		update(&m.Expr)
		update(&m.Env)
	case Continue:
		update(&m.Val)
	}
	update(&m.Cont)
	update(&m.Done)
	update(&m.Empty)
}

// InterpByStep runs e to completion via the stepping machine and returns
// the resulting value.Value Ref. This is spec.md §4.3's interp_by_steps:
// set mode=Interp, expr=e, env=Empty, val=nil, cont=Done, then repeat the
// safepoint-dispatch loop until Continue mode reaches Done.
func (m *Machine) InterpByStep(h *gc.Heap, e gc.Ref) (gc.Ref, error) {
	m.Mode = Interp
	m.Expr = e
	m.Env = m.Empty
	m.Val = gc.Nil
	m.Cont = m.Done

	for {
		if err := h.CheckCollect(m); err != nil {
			return gc.Nil, err
		}
		switch {
		case m.Mode == Interp:
			if err := m.stepInterp(h); err != nil {
				return gc.Nil, err
			}
		case m.Cont == m.Done:
			return m.Val, nil
		default:
			if err := m.stepContinue(h); err != nil {
				return gc.Nil, err
			}
		}
	}
}

var errDoneStepped = fmt.Errorf("step_continue invoked on Done")
