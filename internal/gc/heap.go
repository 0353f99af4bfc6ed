// Package gc implements a Cheney-style semi-space copying collector for the
// interpreter's heap-allocated objects (expressions, values, environments,
// and continuations). Collection only ever runs at a safepoint between
// steps of the stepping machine; the direct recursive interpreter never
// triggers it.
package gc

import "fmt"

// Ref is an opaque handle to a heap-resident object. It plays the role the
// original implementation gave to a raw pointer into to_space: callers never
// dereference a Ref themselves, they pass it back to the Heap that issued
// it. A Ref held in a root (see RootProvider) or in a traced object field
// survives collection: the forwarding-pointer update rewrites it in place to
// the object's new index. A Ref held anywhere else is stale after a
// collection.
type Ref int32

// Nil is the sentinel Ref (-1), never returned by Alloc and never
// resolvable.
const Nil Ref = -1

// Object is implemented by every heap-resident type: expressions, values,
// environments, and continuations.
type Object interface {
	// Size reports the object's logical weight in words, used for heap
	// pressure accounting. See DESIGN.md for why this is a logical word
	// count rather than a byte length.
	Size() int
	// Trace invokes update on every outgoing Ref field the object holds,
	// in any order. Leaf objects (Num, Bool, Empty, Done) have an empty
	// Trace.
	Trace(update func(*Ref))
}

// slot holds one object plus the bookkeeping the collector needs: a
// forwarding flag and the Ref it forwards to once this object has been
// copied into the new space during a collection.
type slot struct {
	obj        Object
	forwarded  bool
	forwardTo  Ref
}

// RootProvider is implemented by the stepping machine (or any other client
// threading Refs through a safepoint). UpdateRoots is called once per
// collection, after to_space/from_space have been swapped; the callback
// must invoke update on every live Ref it holds, mutating it in place.
type RootProvider interface {
	UpdateRoots(update func(*Ref))
}

// Heap is a semi-space copying collector. Capacity is tracked in words,
// mirroring the object-size accounting in Object.Size.
type Heap struct {
	active   []slot // the current to_space
	used     int    // words allocated in active
	capacity int     // words before check_collect wants to run
	oom      bool    // set by Alloc when capacity was exceeded

	margin int // safety margin check_collect reserves before collecting
}

// DefaultCapacity is the heap's initial capacity in words. It is
// deliberately small so that longer-running programs (such as a deep
// recursive countdown) go through collection and growth; small programs
// finish without ever reaching it.
const DefaultCapacity = 4096

// DefaultMargin is the number of words check_collect wants free after a
// collection. If fewer are free, it doubles the capacity once and collects
// again; if that still leaves fewer free, it reports out of memory.
const DefaultMargin = 64

// NewHeap creates a Heap with the given initial capacity (in words).
func NewHeap(capacity int) *Heap {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Heap{
		active:   make([]slot, 0, capacity),
		capacity: capacity,
		margin:   DefaultMargin,
	}
}

// Alloc allocates obj in the current to_space and returns its Ref.
// Allocation never fails synchronously: if it leaves fewer than the margin's
// words free below the heap's capacity, the out-of-memory flag is set and
// surfaced at the next
// safepoint (see CheckCollect), matching spec.md's "a flag records
// out-of-memory for the next safepoint".
func (h *Heap) Alloc(obj Object) Ref {
	r := Ref(len(h.active))
	h.active = append(h.active, slot{obj: obj})
	h.used += obj.Size()
	if h.used+h.margin > h.capacity {
		h.oom = true
	}
	return r
}

// Get resolves a Ref to the Object it currently refers to.
func (h *Heap) Get(r Ref) Object {
	if r == Nil {
		return nil
	}
	return h.active[r].obj
}

// Used reports current allocation pressure in words, for diagnostics.
func (h *Heap) Used() int { return h.used }

// Capacity reports the heap's current word capacity.
func (h *Heap) Capacity() int { return h.capacity }

// CheckCollect is the stepping driver's safepoint (spec.md §4.5). It must
// only be called when the complete set of live Refs is enumerable via
// roots.UpdateRoots — i.e. between steps of the CEK loop, never from the
// direct recursive interpreter.
func (h *Heap) CheckCollect(roots RootProvider) error {
	if !h.oom && h.used+h.margin < h.capacity {
		return nil
	}
	h.collect(roots)
	if h.used+h.margin >= h.capacity {
		h.capacity *= 2
		h.collect(roots)
		if h.used+h.margin >= h.capacity {
			return fmt.Errorf("out of memory")
		}
	}
	h.oom = false
	return nil
}

// collect performs one semi-space copy: swap to_space/from_space, update
// roots via forwarding, then scan the new to_space breadth-first (via a
// growing slice acting as both the copied region and the scan worklist),
// tracing each copied object's own outgoing references.
func (h *Heap) collect(roots RootProvider) {
	from := h.active
	h.active = make([]slot, 0, cap(from))
	h.used = 0
	h.oom = false

	update := func(r *Ref) {
		if *r == Nil {
			return
		}
		src := &from[*r]
		if !src.forwarded {
			newRef := Ref(len(h.active))
			h.active = append(h.active, slot{obj: src.obj})
			h.used += src.obj.Size()
			src.forwarded = true
			src.forwardTo = newRef
		}
		*r = src.forwardTo
	}

	roots.UpdateRoots(update)

	// Scan to_space; it grows as objects are copied in, so re-read its
	// length on every iteration rather than snapshotting it up front.
	for i := 0; i < len(h.active); i++ {
		h.active[i].obj.Trace(update)
	}
}
