package vm

import "unsafe"

// RangePayload is a ref-counted (low, high, exclusive) triple.
type RangePayload struct {
	refHeader
	low, high Value
	exclusive bool
}

// NewRange returns a Range value wrapping low..high (or low...high when
// exclusive), with refcount 1.
func (vm *VM) NewRange(low, high Value, exclusive bool) Value {
	vm.incref(low)
	vm.incref(high)
	rp := &RangePayload{refHeader: refHeader{refcount: 1}, low: low, high: high, exclusive: exclusive}
	return newHeap(Range, unsafe.Pointer(rp))
}

func (rp *RangePayload) Low() Value      { return rp.low }
func (rp *RangePayload) High() Value     { return rp.high }
func (rp *RangePayload) Exclusive() bool { return rp.exclusive }

func (rp *RangePayload) release(vm *VM) {
	vm.decref(rp.low)
	vm.decref(rp.high)
}
