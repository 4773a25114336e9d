package vm

import "unsafe"

// ObjectPayload is an instance: a class pointer plus an ivar key-value
// handle, an ordered list of (symbol-keyed, value) pairs with
// insertion-order and linear-search semantics (§3.4).
type ObjectPayload struct {
	refHeader
	Class *ClassPayload
	ivar  kvHandle
}

// InstanceNew implements §4.4 instance_new: allocate an Object payload
// with an empty ivar table and refcount 1. nivars is accepted for parity
// with the source's preallocation hint but unused — kvHandle grows its
// slice on demand rather than preallocating a fixed slot count.
func (vm *VM) InstanceNew(cls *ClassPayload, nivars int) Value {
	vm.incref(classValueOf(cls))
	op := &ObjectPayload{refHeader: refHeader{refcount: 1}, Class: cls}
	return newHeap(Object, unsafe.Pointer(op))
}

// GetIVar reads an ivar by symbol id, returning NilValue if unset.
func (op *ObjectPayload) GetIVar(sym Value) Value {
	if v, ok := op.ivar.get(sym); ok {
		return v
	}
	return NilValue
}

// SetIVar assigns an ivar by symbol id, incref'ing val and decref'ing any
// value it displaces.
func (op *ObjectPayload) SetIVar(vm *VM, sym, val Value) {
	op.ivar.set(vm, sym, val)
}

func (op *ObjectPayload) release(vm *VM) {
	op.ivar.release(vm)
	vm.decref(classValueOf(op.Class))
}

// classValueOf re-wraps a *ClassPayload as a Value so decref's ordinary
// heap-teardown path can run uniformly over it. Since classes never
// reach a zero refcount in practice (§5), this is purely the bookkeeping
// the invariant calls for, not a path that ever frees anything.
func classValueOf(cp *ClassPayload) Value {
	return newHeap(Class, unsafe.Pointer(cp))
}
