package vm

import "unsafe"

// ArrayPayload is a ref-counted, ordered sequence of values. Element
// storage is an ordinary Go slice: unlike String and the symbol table's name copies, an
// array's backing store has no testable property tied to the pool
// allocator, so it is kept Go-native rather than carved out of the pool by
// hand (see DESIGN.md).
type ArrayPayload struct {
	refHeader
	elems []Value
}

// NewArray returns an Array value wrapping elems, taking ownership of the
// slice (the caller must not retain and mutate it independently).
func (vm *VM) NewArray(elems []Value) Value {
	ap := &ArrayPayload{refHeader: refHeader{refcount: 1}, elems: elems}
	return newHeap(Array, unsafe.Pointer(ap))
}

func (ap *ArrayPayload) Len() int          { return len(ap.elems) }
func (ap *ArrayPayload) At(i int) Value    { return ap.elems[i] }
func (ap *ArrayPayload) Elements() []Value { return ap.elems }

func (ap *ArrayPayload) release(vm *VM) {
	for _, e := range ap.elems {
		vm.decref(e)
	}
}

// Elements returns v's backing slice, panicking if v is not an Array.
func (v Value) Elements() []Value { return v.arrayPayload().elems }
