package vm

import "unsafe"

// ProcPayload is a ref-counted closure: an irep body paired with the self
// it was captured under. Script method dispatch (class.go) does not go
// through Proc at all — it is only materialized when script code takes a
// method body as a first-class value.
type ProcPayload struct {
	refHeader
	irep *Irep
	self Value
}

// NewProc wraps irep and self as a Proc value with refcount 1.
func (vm *VM) NewProc(irep *Irep, self Value) Value {
	vm.incref(self)
	pp := &ProcPayload{refHeader: refHeader{refcount: 1}, irep: irep, self: self}
	return newHeap(Proc, unsafe.Pointer(pp))
}

func (pp *ProcPayload) Irep() *Irep { return pp.irep }
func (pp *ProcPayload) Self() Value { return pp.self }

func (pp *ProcPayload) release(vm *VM) {
	vm.decref(pp.self)
}
